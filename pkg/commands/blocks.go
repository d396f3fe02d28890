package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/runner/blocks"
)

func addBlocks(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Manage the background time blocks of the day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the configured time blocks.",
		Example: `
agenda blocks get
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := blocks.Get{Service: svc}
			return s.Do(context.Background())
		},
	}

	set := &cobra.Command{
		Use:   "set <HH:mm-HH:mm:type[:label]> ...",
		Short: "Replace the time block configuration.",
		Long: "Each argument defines one block. Types are work, personal, " +
			"and break; an end before the start wraps past midnight. " +
			"Overlapping blocks are rejected.",
		Example: `
agenda blocks set 09:00-12:00:work 12:00-13:00:break:almoço 13:00-18:00:work
agenda blocks set 22:00-06:00:break:sono
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("expected at least one block definition")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := blocks.Set{Specs: args, Service: svc}
			return s.Do(context.Background())
		},
	}

	cmd.AddCommand(get, set)
	topLevel.AddCommand(cmd)
}
