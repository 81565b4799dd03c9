// Package feed supplies expense transactions from configurable sources:
// a live Plaid bank connection, OFX statement files, or synthetic demo
// data. The source is selected once by configuration instead of branching
// at call sites; failures of the live feed are the caller's cue to fall
// back to demo data.
package feed

import (
	"fmt"
	"strings"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/service"
)

// Config selects and configures a transaction source.
type Config struct {
	Source string // demo, plaid, or ofx

	Plaid PlaidConfig

	// OFXPath is the statement file to read when Source is "ofx".
	OFXPath string

	// DemoSeed makes synthetic data reproducible; 0 means a fixed default.
	DemoSeed int64
}

// New creates the configured transaction source.
func New(cfg Config) (service.TransactionSource, error) {
	switch strings.ToLower(cfg.Source) {
	case "", "demo":
		return NewDemoSource(cfg.DemoSeed), nil
	case "plaid":
		return NewPlaidSource(cfg.Plaid)
	case "ofx":
		if cfg.OFXPath == "" {
			return nil, fmt.Errorf("%w: feed.ofx_path is required for the ofx source", common.ErrMissingConfig)
		}
		return NewOFXSource(cfg.OFXPath), nil
	default:
		return nil, fmt.Errorf("%w: unsupported feed source %q", common.ErrInvalidConfig, cfg.Source)
	}
}
