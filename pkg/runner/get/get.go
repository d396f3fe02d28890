package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/task"
)

// Get lists tasks straight from the source, optionally narrowed by a
// source-side filter expression.
type Get struct {
	ShowID  bool
	JSON    bool
	Filter  string
	Service *app.Service
}

const layoutUS = "January 2, 2006"

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}

	filter := n.Filter
	switch filter {
	case "today":
		filter = "due: " + time.Now().Format("2006-01-02")
	case "tomorrow":
		filter = "due: " + time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	}

	tasks, err := n.Service.Tasks(ctx, filter)
	if err != nil {
		return err
	}
	task.SortStable(tasks)

	if n.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	title := n.Filter
	if title == "" || title == "today" {
		title = time.Now().Format(layoutUS)
	}
	pp.TitleWithCount(title, len(tasks))
	pp.Tasks(tasks...)
	return nil
}
