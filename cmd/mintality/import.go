package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mintality/mintality/internal/cli"
	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/feed"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from the configured feed",
		Long: `Import expense transactions from the configured source (Plaid, an OFX
statement file, or synthetic demo data) into the local database.
Transactions are deduplicated automatically; labels that arrive with the
feed are kept as confirmed.`,
		RunE: runImport,
	}

	cmd.Flags().StringP("start-date", "s", "", "Start date for the import (format: 2006-01-02)")
	cmd.Flags().StringP("end-date", "e", "", "End date for the import (format: 2006-01-02)")
	cmd.Flags().IntP("days", "d", 30, "Number of days to import (used if start/end dates not specified)")
	cmd.Flags().String("source", "", "Override the configured feed source (demo, plaid, ofx)")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")

	_ = viper.BindPFlag("import.start_date", cmd.Flags().Lookup("start-date"))
	_ = viper.BindPFlag("import.end_date", cmd.Flags().Lookup("end-date"))
	_ = viper.BindPFlag("import.days", cmd.Flags().Lookup("days"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg := feedConfig()
	if override, _ := cmd.Flags().GetString("source"); override != "" {
		cfg.Source = override
	}
	source, err := feed.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create transaction source: %w", err)
	}

	start, end, err := parseDateRange(
		viper.GetString("import.start_date"),
		viper.GetString("import.end_date"),
		viper.GetInt("import.days"))
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Importing transactions"))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Range: %s to %s",
		start.Format("2006-01-02"), end.Format("2006-01-02"))))

	transactions, err := source.Fetch(ctx, start, end)
	if err != nil {
		if common.IsRetryable(err) {
			return common.NewUserError("the feed is temporarily unavailable, try again in a minute", err)
		}
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in the date range"))
		return nil
	}

	if viper.GetBool("import.dry_run") {
		for _, txn := range transactions {
			fmt.Printf("  %s  %-24s %-16s $%8.2f  %s\n",
				txn.Date.Format("2006-01-02"), txn.Merchant, txn.Category, txn.Amount, txn.Emotion)
		}
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(transactions))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	before, err := store.CountTransactions(ctx)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetDescription("Saving"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	const batchSize = 100
	for i := 0; i < len(transactions); i += batchSize {
		endIdx := i + batchSize
		if endIdx > len(transactions) {
			endIdx = len(transactions)
		}
		if err := store.SaveTransactions(ctx, transactions[i:endIdx]); err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
		_ = bar.Add(endIdx - i)
	}
	_ = bar.Finish()

	after, err := store.CountTransactions(ctx)
	if err != nil {
		return err
	}

	saved := after - before
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d duplicates skipped)",
		saved, len(transactions)-saved)))
	return nil
}
