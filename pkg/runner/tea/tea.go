package teaui

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/app"
)

// UI launches the interactive day planner.
type UI struct {
	Date    time.Time
	Service *app.Service
}

func (n *UI) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not open planner, no service")
	}
	date := n.Date
	if date.IsZero() {
		date = time.Now()
	}
	return Run(n.Service, date)
}
