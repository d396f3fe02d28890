package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/runner/chat"
)

func addChat(topLevel *cobra.Command) {
	reset := false

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Ask the assistant about your day.",
		Long: "Sends the message to the configured assistant with today's " +
			"schedule as context. The conversation carries over between " +
			"invocations until reset.",
		Example: `
agenda chat "what should I do first?"
agenda chat --reset
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			client, err := loadChat()
			if err != nil {
				return err
			}
			s := chat.Chat{
				Message:   strings.Join(args, " "),
				Reset:     reset,
				Client:    client,
				Service:   svc,
				Snapshots: svc.Snapshots,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the conversation history.")

	topLevel.AddCommand(cmd)
}
