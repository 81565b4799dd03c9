package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mintality/mintality/internal/cli"
	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/engine"
	"github.com/mintality/mintality/internal/inference"
)

func labelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Infer emotion labels for unlabeled transactions",
		Long: `Learn emotional spending patterns from your labeled history and apply
them to unlabeled transactions. Confident predictions are committed
automatically; uncertain ones are shown for confirmation.`,
		RunE: runLabel,
	}

	cmd.Flags().Bool("auto", false, "Commit confident predictions only, never prompt")
	cmd.Flags().Float64("threshold", inference.ConfirmationThreshold,
		"Confidence above which predictions are committed without confirmation")

	return cmd
}

func runLabel(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	auto, _ := cmd.Flags().GetBool("auto")

	opts := []engine.Option{engine.WithThreshold(threshold)}
	if !auto {
		opts = append(opts, engine.WithPrompter(cli.NewLabelPrompter(os.Stdin, os.Stdout)))
	}

	labeler, err := engine.NewLabeler(store, opts...)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Labeling transactions"))

	stats, err := labeler.Run(ctx)
	if errors.Is(err, common.ErrNoTransactions) {
		fmt.Println(cli.FormatWarning("No transactions yet. Run 'mintality import' first."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("labeling failed: %w", err)
	}

	if stats.Total == 0 {
		fmt.Println(cli.FormatInfo("Nothing to label"))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Labeled %d of %d transactions (%d automatic, %d confirmed, %d skipped) in %s",
		stats.AutoLabeled+stats.UserConfirmed, stats.Total,
		stats.AutoLabeled, stats.UserConfirmed, stats.Skipped,
		stats.Duration.Round(time.Millisecond))))
	return nil
}
