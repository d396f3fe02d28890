package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/move"
	"tableflip.dev/agenda/pkg/timeutil"
)

func addMove(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "move <task-id> <HH:mm>",
		Short: "Move a scheduled task to a new 15-minute slot.",
		Example: `
agenda move 7203128460 09:30
agenda move 7203128460 14:00 --on=tomorrow
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("expected a task id and a new start time")
			}
			if _, err := timeutil.ParseClock(args[1]); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			date, err := on.GetOn()
			if err != nil {
				return err
			}
			s := move.Move{
				TaskID:   args[0],
				NewStart: args[1],
				Date:     date,
				Service:  svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
