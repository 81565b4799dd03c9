package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mintality/mintality/internal/cli"
	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/predict"
	"github.com/mintality/mintality/internal/service"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <emotion>",
		Short: "Predict likely spending for an emotional state",
		Long: `Predict what you are likely to buy given an emotional state and the
current context, based on your labeled history. Use --day and --time to
ask about a different moment than right now.`,
		Args: cobra.ExactArgs(1),
		RunE: runPredict,
	}

	cmd.Flags().String("day", "", "Day of week to predict for (default: today)")
	cmd.Flags().String("time", "", "Time of day to predict for: morning, afternoon, evening, night (default: now)")

	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	emotion := model.Emotion(strings.ToLower(args[0]))
	if !emotion.Valid() || !emotion.Labeled() {
		return fmt.Errorf("unknown emotion %q (one of: %s)", args[0], emotionList())
	}

	pctx := predict.ContextAt(time.Now())
	if day, _ := cmd.Flags().GetString("day"); day != "" {
		pctx.DayOfWeek = normalizeDay(day)
		if pctx.DayOfWeek == "" {
			return fmt.Errorf("unknown day of week %q", day)
		}
	}
	if bucket, _ := cmd.Flags().GetString("time"); bucket != "" {
		pctx.TimeOfDay = model.TimeOfDay(strings.ToLower(bucket))
		switch pctx.TimeOfDay {
		case model.Morning, model.Afternoon, model.Evening, model.Night:
		default:
			return fmt.Errorf("unknown time of day %q", bucket)
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	prediction := predict.Generate(txns, emotion, pctx)
	if prediction == nil {
		fmt.Println(cli.FormatInfo(fmt.Sprintf(
			"No confident prediction for %s on %s %s. Not enough history, or no strong pattern.",
			emotion, pctx.DayOfWeek, pctx.TimeOfDay)))
		return nil
	}

	fmt.Println(cli.FormatTitle("Spending prediction"))
	fmt.Println(cli.RenderBox(
		fmt.Sprintf("%s %s on %s %s", cli.EmotionIcon(emotion), emotion, prediction.DayOfWeek, prediction.TimeOfDay),
		fmt.Sprintf("Likely category: %s\nLikelihood score: %.2f\nTypical amount: $%.2f",
			prediction.Category, prediction.Probability, prediction.EstimatedAmount)))

	return nil
}

func normalizeDay(day string) string {
	want := strings.ToLower(day)
	for _, known := range model.Weekdays {
		if strings.ToLower(known) == want {
			return known
		}
	}
	return ""
}

func emotionList() string {
	names := make([]string, len(model.AllEmotions))
	for i, emotion := range model.AllEmotions {
		names[i] = string(emotion)
	}
	return strings.Join(names, ", ")
}
