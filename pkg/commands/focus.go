package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/focus"
)

func addFocus(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	list := false

	cmd := &cobra.Command{
		Use:   "focus [filter]",
		Short: "Work the focus queue one task at a time.",
		Long: "Builds an ordered queue from the saved filter, the current " +
			"ranking, and the backlog, then walks it task by task. A filter " +
			"given here is remembered for next time.",
		Example: `
agenda focus
agenda focus "today | overdue"
agenda focus --list
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fo.Filter = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := focus.Focus{
				Filter:  fo.Filter,
				List:    list,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddFilterArgs(cmd, fo)
	cmd.Flags().BoolVar(&list, "list", false, "Print the queue instead of working it.")

	topLevel.AddCommand(cmd)
}
