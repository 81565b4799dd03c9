package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mintality/mintality/internal/cli"
	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/risk"
	"github.com/mintality/mintality/internal/service"
)

func checkinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a daily mood check-in",
		Long: `Record how you're feeling today. Check-ins feed the impulse-risk model:
once enough history exists, each check-in comes back with a rating of how
likely today is to turn into impulse spending.`,
		RunE: runCheckin,
	}

	cmd.Flags().String("mood", "", "Today's mood (e.g. happy, calm, down)")
	cmd.Flags().String("energy", "", "Energy level (e.g. high, moderate, low)")
	cmd.Flags().String("stress", "", "Stress level (e.g. low, moderate, high)")
	cmd.Flags().String("goal", "", "Today's financial goal")
	cmd.Flags().String("notes", "", "Anything on your mind about money")

	return cmd
}

func runCheckin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	latest, err := store.GetLatestCheckIn(ctx)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	if latest != nil && latest.SameDay(now) {
		fmt.Println(cli.FormatInfo("You already checked in today. Come back tomorrow."))
		return nil
	}

	checkIn := &model.CheckIn{
		ID:   uuid.NewString(),
		Date: now,
	}
	if err := fillCheckIn(ctx, cmd, checkIn); err != nil {
		return err
	}

	if err := store.SaveCheckIn(ctx, checkIn); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			fmt.Println(cli.FormatInfo("You already checked in today. Come back tomorrow."))
			return nil
		}
		return fmt.Errorf("failed to save check-in: %w", err)
	}
	fmt.Println(cli.FormatSuccess("Check-in saved"))

	if checkIn.Notes != "" {
		reportNoteEmotion(ctx, checkIn.Notes)
	}

	return reportImpulseRisk(ctx, store, checkIn)
}

// fillCheckIn takes answers from flags when given, otherwise prompts.
func fillCheckIn(ctx context.Context, cmd *cobra.Command, checkIn *model.CheckIn) error {
	reader := cli.NewReader(os.Stdin)

	ask := func(flag, question string, required bool) (string, error) {
		if value, _ := cmd.Flags().GetString(flag); value != "" {
			return value, nil
		}
		for {
			fmt.Print(cli.FormatPrompt(question))
			answer, err := reader.ReadLine(ctx)
			if err != nil {
				return "", err
			}
			if answer != "" || !required {
				return answer, nil
			}
			fmt.Println(cli.FormatWarning("This one is required"))
		}
	}

	var err error
	if checkIn.Mood, err = ask("mood", "How's your mood today?", true); err != nil {
		return err
	}
	if checkIn.Energy, err = ask("energy", "How's your energy?", true); err != nil {
		return err
	}
	if checkIn.Stress, err = ask("stress", "How stressed are you?", true); err != nil {
		return err
	}
	if checkIn.FinancialGoal, err = ask("goal", "Any financial goal for today?", false); err != nil {
		return err
	}
	if checkIn.Notes, err = ask("notes", "Anything on your mind about money?", false); err != nil {
		return err
	}
	return nil
}

// reportNoteEmotion classifies the free-text notes and warns when the
// detected emotion is intense enough to put spending at risk.
func reportNoteEmotion(ctx context.Context, notes string) {
	emotion, confidence, err := adviceClient(ctx).DetectEmotion(ctx, notes)
	if err != nil || !emotion.Labeled() {
		return
	}

	intensity := emotion.Intensity(confidence)
	fmt.Printf("  Detected feeling: %s %s (intensity %.2f)\n", cli.EmotionIcon(emotion), emotion, intensity)

	if emotion.HighRisk(intensity) {
		fmt.Println(cli.FormatWarning("That feeling often drives spending. Maybe hold off on purchases today."))
		if activity, err := adviceClient(ctx).AlternativeActivity(ctx, emotion, "shopping"); err == nil {
			fmt.Println(cli.SubtleStyle.Render("  " + activity))
		}
	}
}

// reportImpulseRisk trains the risk model on history and rates today.
func reportImpulseRisk(ctx context.Context, store service.Storage, checkIn *model.CheckIn) error {
	checkIns, err := store.GetCheckIns(ctx)
	if err != nil {
		return err
	}
	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return err
	}

	var classifier risk.Classifier = risk.NewClassifier()
	if risk.Ready(checkIns, txns) {
		if err := classifier.Train(risk.BuildSamples(checkIns, txns)); err != nil {
			return err
		}
	}

	level := classifier.Predict(risk.Features{
		Mood:   checkIn.Mood,
		Energy: checkIn.Energy,
		Stress: checkIn.Stress,
	})

	switch level {
	case risk.High:
		fmt.Println(cli.FormatWarning("Impulse spending risk today: HIGH"))
	case risk.Low:
		fmt.Println(cli.FormatSuccess("Impulse spending risk today: low"))
	default:
		fmt.Println(cli.FormatInfo("Impulse spending risk today: medium"))
	}
	if !classifier.Trained() {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
			"  (default rating: the model needs %d days of check-ins and %d transactions to learn your patterns)",
			risk.MinSamples, risk.MinTransactions)))
	}
	return nil
}
