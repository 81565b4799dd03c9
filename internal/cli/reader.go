package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Reader provides context-aware input reading that can be interrupted.
type Reader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewReader creates a context-aware reader.
func NewReader(reader io.Reader) *Reader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &Reader{
		reader: bufio.NewReader(reader),
	}
}

// ReadLine reads a trimmed line, respecting context cancellation. The
// underlying read cannot be aborted, so a canceled call leaves a goroutine
// blocked until the next line arrives.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.value == "" {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
