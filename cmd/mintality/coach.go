package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mintality/mintality/internal/cli"
)

func coachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coach <question...>",
		Short: "Ask the financial wellness coach",
		Long: `Ask a free-form question about money and mood. With a Gemini API key
configured, answers come from the AI coach; without one, you get offline
guidance matched to the feeling in your question.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			question := strings.Join(args, " ")

			reply, err := adviceClient(ctx).CoachReply(ctx, question)
			if err != nil {
				return fmt.Errorf("coach unavailable: %w", err)
			}

			fmt.Println(cli.RenderBox("Coach", reply))
			return nil
		},
	}
}
