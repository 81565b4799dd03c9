package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mintality/mintality/internal/advice"
	"github.com/mintality/mintality/internal/cli"
	"github.com/mintality/mintality/internal/insights"
	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/service"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show emotional spending insights",
		Long: `Summarize spending by emotion: totals, potential savings, top triggers,
recent trends, and the merchants behind it all. Neutral and unlabeled
purchases are excluded from emotional totals.`,
		RunE: runInsights,
	}

	cmd.Flags().IntP("days", "d", 30, "Trend window in days")
	cmd.Flags().String("emotion", "", "Focus the breakdown on one emotion")
	cmd.Flags().Int("merchants", 5, "How many top merchants to show")
	cmd.Flags().Bool("advice", false, "Include AI coaching advice")

	return cmd
}

func runInsights(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txns) == 0 {
		fmt.Println(cli.FormatWarning("No transactions yet. Run 'mintality import' first."))
		return nil
	}

	summary := insights.Summarize(txns)
	savings := insights.PotentialSavings(summary)

	fmt.Println(cli.FormatTitle("Emotional spending"))
	printSummary(summary)
	fmt.Println()
	fmt.Println(cli.FormatInfo(fmt.Sprintf("Cutting emotional purchases in half could save about $%.2f", savings)))

	focus := topEmotion(summary)
	if flagEmotion, _ := cmd.Flags().GetString("emotion"); flagEmotion != "" {
		focus = model.Emotion(strings.ToLower(flagEmotion))
		if !focus.Valid() || !focus.Emotional() {
			return fmt.Errorf("unknown emotion %q", flagEmotion)
		}
	}

	if focus.Emotional() {
		printFocus(cmd, txns, focus)
	}

	days, _ := cmd.Flags().GetInt("days")
	printTrends(txns, days)

	if withAdvice, _ := cmd.Flags().GetBool("advice"); withAdvice && focus.Emotional() {
		fmt.Println()
		insight, err := adviceClient(ctx).SpendingInsight(ctx, advice.InsightRequest{
			TopEmotion:       focus,
			TopEmotionSpend:  summary.ByEmotion[focus],
			CategorySpend:    insights.SpendingByCategoryForEmotion(txns, focus),
			PotentialSavings: savings,
		})
		if err != nil {
			return fmt.Errorf("failed to generate advice: %w", err)
		}
		fmt.Println(cli.RenderBox("Coach", insight))
	}

	return nil
}

func printSummary(summary insights.EmotionSummary) {
	emotions := make([]model.Emotion, 0, len(summary.ByEmotion))
	for emotion := range summary.ByEmotion {
		emotions = append(emotions, emotion)
	}
	sort.Slice(emotions, func(i, j int) bool {
		if summary.ByEmotion[emotions[i]] != summary.ByEmotion[emotions[j]] {
			return summary.ByEmotion[emotions[i]] > summary.ByEmotion[emotions[j]]
		}
		return emotions[i] < emotions[j]
	})

	for _, emotion := range emotions {
		fmt.Printf("  %s %-16s $%10.2f\n", cli.EmotionIcon(emotion), emotion, summary.ByEmotion[emotion])
	}
	fmt.Printf("  %s %-16s $%10.2f\n", cli.ChartIcon, "total", summary.Total)
}

func printFocus(cmd *cobra.Command, txns []model.Transaction, emotion model.Emotion) {
	fmt.Println()
	fmt.Println(cli.FormatTitle(fmt.Sprintf("When feeling %s", emotion)))

	trigger := insights.TopTriggerForEmotion(txns, emotion)
	if trigger.Category != "" {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Top trigger: %s in the %s ($%.2f)",
			trigger.Category, trigger.TimeOfDay, trigger.Amount)))
	}

	if avg, ok := insights.AverageAmountByEmotion(txns)[emotion]; ok {
		fmt.Printf("  Average purchase: $%.2f\n", avg)
	}

	byDay := insights.SpendingByDayOfWeek(txns, emotion)
	best, bestAmount := "", 0.0
	for _, day := range model.Weekdays {
		if byDay[day] > bestAmount {
			best, bestAmount = day, byDay[day]
		}
	}
	if best != "" {
		fmt.Printf("  Heaviest day: %s ($%.2f)\n", best, bestAmount)
	}

	limit, _ := cmd.Flags().GetInt("merchants")
	merchants := insights.TopMerchantsForEmotion(txns, emotion, limit)
	if len(merchants) > 0 {
		fmt.Println("  Top merchants:")
		for _, m := range merchants {
			fmt.Printf("    %-24s $%8.2f (%d purchases)\n", m.Merchant, m.Amount, m.Count)
		}
	}
}

func printTrends(txns []model.Transaction, days int) {
	trends := insights.SpendingTrends(txns, days)
	if len(trends) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(cli.FormatTitle(fmt.Sprintf("Last %d days", days)))

	emotions := make([]model.Emotion, 0, len(trends))
	for emotion := range trends {
		emotions = append(emotions, emotion)
	}
	sort.Slice(emotions, func(i, j int) bool {
		if trends[emotions[i]] != trends[emotions[j]] {
			return trends[emotions[i]] > trends[emotions[j]]
		}
		return emotions[i] < emotions[j]
	})
	for _, emotion := range emotions {
		fmt.Printf("  %s %-16s $%10.2f\n", cli.EmotionIcon(emotion), emotion, trends[emotion])
	}
}

// topEmotion picks the emotional label with the highest total spend.
func topEmotion(summary insights.EmotionSummary) model.Emotion {
	best := model.EmotionUnset
	bestAmount := 0.0
	for _, emotion := range model.AllEmotions {
		if !emotion.Emotional() {
			continue
		}
		if amount := summary.ByEmotion[emotion]; amount > bestAmount {
			best, bestAmount = emotion, amount
		}
	}
	return best
}
