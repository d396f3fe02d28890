package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("7203128460  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" task")
	default:
		_, _ = c.Println(" tasks")
	}
}

// Tasks renders a plain task listing with priority, due, and category.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	if pp.ShowID {
		table.AddRow("ID", "", "PRI", "DUE", "TASK")
	} else {
		table.AddRow("", "PRI", "DUE", "TASK")
	}
	for _, t := range tasks {
		pri := glyph.PriorityName(t.NormalizedPriority())
		due := ""
		if t.Due != nil && !t.Due.Date.IsZero() {
			layout := "Jan 2"
			if t.Due.HasTime {
				layout = "Jan 2 15:04"
			}
			due = t.Due.Date.Local().Format(layout)
		}
		cat := glyph.Category(string(t.Category())).Symbol
		if pp.ShowID {
			table.AddRow(t.ID, cat, pri, due, t.Content)
		} else {
			table.AddRow(cat, pri, due, t.Content)
		}
	}
	_, _ = fmt.Fprintln(color.Output, table)
	fmt.Println("")
}

// Queue renders the focus queue in working order, the head highlighted.
func (pp *PrettyPrint) Queue(tasks []*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" nothing to focus on\n\n")
		return
	}

	head := color.New(color.Bold, color.FgHiGreen)
	rest := color.New()
	faint := color.New(color.Faint)
	for i, t := range tasks {
		line := fmt.Sprintf("%2d. %s %s", i+1, glyph.Priority(t.NormalizedPriority()).Symbol, t.Content)
		if i == 0 {
			_, _ = head.Println(line)
			continue
		}
		if i < 10 {
			_, _ = rest.Println(line)
			continue
		}
		if i == 10 {
			_, _ = faint.Printf("    … %d more\n", len(tasks)-10)
			break
		}
	}
	fmt.Println("")
}
