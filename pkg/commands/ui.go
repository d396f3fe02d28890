package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	teaui "tableflip.dev/agenda/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive day planner.",
		Example: `
agenda ui
agenda ui --on=tomorrow
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			date, err := on.GetOn()
			if err != nil {
				return err
			}
			i := teaui.UI{Date: date, Service: svc}
			return i.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
