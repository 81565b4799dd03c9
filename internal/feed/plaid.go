package feed

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/service"
)

// PlaidConfig holds Plaid API configuration.
type PlaidConfig struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *PlaidConfig) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: plaid access token", common.ErrMissingConfig)
	}
	switch c.Environment {
	case "sandbox", "production":
		return nil
	default:
		return fmt.Errorf("%w: plaid environment must be sandbox or production", common.ErrInvalidConfig)
	}
}

// PlaidSource fetches expense transactions from the Plaid API.
type PlaidSource struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	retryOpts   service.RetryOptions
	accessToken string
}

// NewPlaidSource creates a Plaid-backed transaction source.
func NewPlaidSource(cfg PlaidConfig) (*PlaidSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &PlaidSource{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// Fetch retrieves expense transactions within the date range. Inflows are
// filtered out; the analyzer only consumes money spent.
func (s *PlaidSource) Fetch(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	s.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var page []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				s.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			}
			request.SetOptions(options)

			resp, _, err := s.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						s.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{
							Err:       fmt.Errorf("%w: %s", common.ErrFeedRateLimit, plaidError.ErrorMessage),
							Retryable: true,
						}
					}
					return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("%w: %v", common.ErrFeedConnection, err)
			}

			page = resp.GetTransactions()
			s.logger.Debug("Fetched transaction batch",
				"count", len(page),
				"offset", offset,
				"total", resp.GetTotalTransactions())

			return nil
		}, s.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		allTransactions = append(allTransactions, page...)

		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	transactions := make([]model.Transaction, 0, len(allTransactions))
	for _, pt := range allTransactions {
		txn, ok := s.mapTransaction(pt)
		if !ok {
			continue
		}
		transactions = append(transactions, txn)
	}

	s.logger.Info("Fetched transactions",
		"raw", len(allTransactions),
		"expenses", len(transactions))

	return transactions, nil
}

// mapTransaction converts a Plaid transaction to our model. Returns false
// for inflows and zero-amount records.
func (s *PlaidSource) mapTransaction(pt plaid.Transaction) (model.Transaction, bool) {
	// In Plaid, positive amounts are debits (money out).
	amount := pt.GetAmount()
	if amount <= 0 {
		return model.Transaction{}, false
	}

	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		s.logger.Error("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
		return model.Transaction{}, false
	}
	// Plaid's date field has no hour; prefer the optional datetime so the
	// time-of-day bucket is meaningful, otherwise assume midday.
	if dt, ok := pt.GetDatetimeOk(); ok && dt != nil && !dt.IsZero() {
		date = *dt
	} else {
		date = time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	}

	merchant := pt.GetMerchantName()
	if merchant == "" {
		merchant = pt.GetName()
	}
	merchant = cleanMerchantName(merchant)

	category := "uncategorized"
	if categories := pt.GetCategory(); len(categories) > 0 {
		category = strings.ToLower(categories[0])
	}

	txn := model.Transaction{
		Date:     date,
		Merchant: merchant,
		Category: category,
		Amount:   roundCents(amount),
	}
	txn.SetTimeContext()
	txn.ID = txn.GenerateHash()

	return txn, true
}

// extractPlaidError pulls the structured error out of a Plaid API failure.
func extractPlaidError(err error) *plaid.PlaidError {
	if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		return &plaidErr
	}
	return nil
}

var storeNumberSuffix = regexp.MustCompile(`\s+#?\d+$`)

// cleanMerchantName strips trailing store numbers and collapses whitespace.
func cleanMerchantName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	name = storeNumberSuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// roundCents keeps amounts at cent precision.
func roundCents(amount float64) float64 {
	return float64(int64(amount*100+0.5)) / 100
}
