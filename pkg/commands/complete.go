package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	reopen := false

	cmd := &cobra.Command{
		Use:     "complete <task-id>",
		Aliases: []string{"done", "x"},
		Short:   "Mark a task as done.",
		Example: `
agenda complete 7203128460
agenda complete 7203128460 --reopen
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := complete.Complete{
				ID:      args[0],
				Reopen:  reopen,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "Reopen a previously completed task.")

	topLevel.AddCommand(cmd)
}
