package matrix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

// Matrix classifies the whole backlog into Eisenhower quadrants, prints the
// result, and stores the flattened ranking for the focus queue.
type Matrix struct {
	ShowID  bool
	Service *app.Service
}

func (n *Matrix) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not build matrix, no service")
	}

	result, err := n.Service.BuildMatrix(ctx, time.Now())
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.Matrix(result)
	fmt.Println("ranking saved for the focus queue")
	return nil
}
