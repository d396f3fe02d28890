package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/matrix"
)

func addMatrix(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Classify open tasks into the urgency/importance quadrants.",
		Long: "Builds the four-quadrant view from the open tasks and saves " +
			"the flattened ordering as the ranking used by focus.",
		Example: `
agenda matrix
agenda matrix --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := matrix.Matrix{
				ShowID:  io.ShowID,
				Service: svc,
			}
			return s.Do(context.Background())
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
