package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("MINTALITY_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "absolute untouched", path: "/tmp/mintality.db", want: "/tmp/mintality.db"},
		{name: "relative untouched", path: "data/mintality.db", want: "data/mintality.db"},
		{name: "bare tilde", path: "~", want: home},
		{name: "tilde prefix", path: "~/.local/share/mintality", want: filepath.Join(home, ".local/share/mintality")},
		{name: "env var", path: "$MINTALITY_TEST_DIR/mintality.db", want: "/var/data/mintality.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
