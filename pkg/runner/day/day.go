package day

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
)

type Day struct {
	ShowID  bool
	JSON    bool
	Date    time.Time
	Service *app.Service
}

func (n *Day) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show day, no service")
	}
	if n.Date.IsZero() {
		n.Date = time.Now()
	}

	schedule, err := n.Service.Day(ctx, n.Date)
	if err != nil {
		return err
	}

	if n.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(schedule)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.Day(schedule)
	return nil
}
