package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/triage"
)

func addTriage(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Process the unscheduled inbox one task at a time.",
		Long: "Walks every task without a date and asks what to do with it: " +
			"do it now, put it on the calendar, park it for someday, or " +
			"delete it.",
		Example: `
agenda triage
agenda triage --filter="#trabalho"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := triage.Triage{
				Filter:  fo.Filter,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddFilterArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
