// Package complete provides the runner logic for closing tasks.
package complete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

// Complete marks a task as done at the source. With Reopen set, it reverses
// a completion instead.
type Complete struct {
	ID      string
	Reopen  bool
	Service *app.Service
}

// Do executes the operation and reprints today's remaining schedule.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	if n.ID == "" {
		return errors.New("can not complete, no task id")
	}

	if n.Reopen {
		if err := n.Service.Source.Reopen(ctx, n.ID); err != nil {
			return err
		}
	} else {
		if err := n.Service.Complete(ctx, n.ID); err != nil {
			return err
		}
	}

	day, err := n.Service.Day(ctx, time.Now())
	if err != nil {
		fmt.Printf("warning: could not refresh the day: %v\n", err)
		return nil
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Day(day)
	return nil
}
