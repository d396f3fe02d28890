package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: base.Wrap80("Day planning and task focus on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addDay(topLevel)
	addMove(topLevel)
	addComplete(topLevel)
	addFocus(topLevel)
	addMatrix(topLevel)
	addBlocks(topLevel)
	addTriage(topLevel)
	addChat(topLevel)
	addGet(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}
