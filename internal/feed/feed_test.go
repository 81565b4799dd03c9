package feed

import (
	"context"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintality/mintality/internal/common"
)

func TestNewSelectsSource(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr error
	}{
		{
			name: "default is demo",
			cfg:  Config{},
			want: &DemoSource{},
		},
		{
			name: "explicit demo",
			cfg:  Config{Source: "demo"},
			want: &DemoSource{},
		},
		{
			name: "ofx with path",
			cfg:  Config{Source: "ofx", OFXPath: "statement.qfx"},
			want: &OFXSource{},
		},
		{
			name:    "ofx without path",
			cfg:     Config{Source: "ofx"},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "plaid without credentials",
			cfg:     Config{Source: "plaid"},
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "unknown source",
			cfg:     Config{Source: "carrier-pigeon"},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := New(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, source)
		})
	}
}

func TestPlaidConfigValidate(t *testing.T) {
	valid := PlaidConfig{
		ClientID:    "client",
		Secret:      "secret",
		Environment: "sandbox",
		AccessToken: "token",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Secret = ""
	assert.ErrorIs(t, missing.Validate(), common.ErrMissingConfig)

	badEnv := valid
	badEnv.Environment = "staging"
	assert.ErrorIs(t, badEnv.Validate(), common.ErrInvalidConfig)
}

func TestDemoSourceDeterministic(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)

	first, err := NewDemoSource(7).Fetch(ctx, start, end)
	require.NoError(t, err)
	second, err := NewDemoSource(7).Fetch(ctx, start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := NewDemoSource(8).Fetch(ctx, start, end)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDemoSourceProducesValidTransactions(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	txns, err := NewDemoSource(0).Fetch(ctx, start, end)
	require.NoError(t, err)
	require.NotEmpty(t, txns)

	labeled := 0
	for _, txn := range txns {
		assert.NotEmpty(t, txn.ID)
		assert.NotEmpty(t, txn.Merchant)
		assert.NotEmpty(t, txn.Category)
		assert.Greater(t, txn.Amount, 0.0)
		assert.True(t, txn.Emotion.Valid(), "emotion %q", txn.Emotion)
		assert.False(t, txn.Date.Before(start))
		assert.False(t, txn.Date.After(end.AddDate(0, 0, 1)))
		if txn.Emotion.Labeled() {
			labeled++
		}
	}

	// Around 70% should arrive pre-labeled.
	share := float64(labeled) / float64(len(txns))
	assert.InDelta(t, 0.7, share, 0.15)
}

func TestDemoSourceRejectsInvertedRange(t *testing.T) {
	start := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err := NewDemoSource(0).Fetch(context.Background(), start, start.AddDate(0, 0, -1))
	assert.Error(t, err)
}

func TestCleanMerchantName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fresh Mart #1234", "Fresh Mart"},
		{"Fresh  Mart   ", "Fresh Mart"},
		{"Corner Cafe 042", "Corner Cafe"},
		{"Bookworm", "Bookworm"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanMerchantName(tt.in), "input %q", tt.in)
	}
}

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 12.35, roundCents(12.345), 1e-9)
	assert.InDelta(t, 0.01, roundCents(0.005), 1e-9)
}

func TestExtractMerchantName(t *testing.T) {
	payee := ofxgo.Transaction{
		Payee: &ofxgo.Payee{Name: "Fresh Mart"},
		Name:  "POS TRANSACTION",
	}
	assert.Equal(t, "Fresh Mart", extractMerchantName(payee))

	memoFallback := ofxgo.Transaction{
		Name: "DEBIT",
		Memo: "Corner Cafe",
	}
	assert.Equal(t, "Corner Cafe", extractMerchantName(memoFallback))

	prefixed := ofxgo.Transaction{
		Name: "POS PURCHASE Vino & Co",
	}
	assert.Equal(t, "Vino & Co", extractMerchantName(prefixed))

	dated := ofxgo.Transaction{
		Name: "05/01 Styleline",
	}
	assert.Equal(t, "Styleline", extractMerchantName(dated))
}

func TestCategoryForType(t *testing.T) {
	assert.Equal(t, "bank fees", categoryForType("FEE"))
	assert.Equal(t, "cash", categoryForType("ATM"))
	assert.Equal(t, "uncategorized", categoryForType("DEBIT"))
}

func TestPreprocessOFX(t *testing.T) {
	raw := "\n\n<SEVERITY>Info</SEVERITY>\n<STMTRS\n"
	fixed := preprocessOFX(raw)

	assert.Contains(t, fixed, "<SEVERITY>INFO</SEVERITY>")
	assert.Contains(t, fixed, "<STMTRS>")
	assert.False(t, fixed[0] == '\n')
}
