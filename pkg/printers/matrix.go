package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/matrix"
)

// Matrix renders the four Eisenhower quadrants in working order.
func (pp *PrettyPrint) Matrix(r matrix.Result) {
	order := []matrix.Quadrant{
		matrix.QuadrantUrgentImportant,
		matrix.QuadrantImportant,
		matrix.QuadrantUrgent,
		matrix.QuadrantNeither,
	}

	for _, q := range order {
		tasks := r.Quadrants[q]
		header := fmt.Sprintf("%s %s", glyph.Quadrant(int(q)).Symbol, q)
		pp.TitleWithCount(header, len(tasks))
		if len(tasks) == 0 {
			f := color.New(color.Faint, color.Italic)
			_, _ = f.Print(" none\n\n")
			continue
		}

		table := uitable.New()
		table.MaxColWidth = 60
		for _, t := range tasks {
			due := ""
			if t.Due != nil && !t.Due.Date.IsZero() {
				due = t.Due.Date.Local().Format("Jan 2 15:04")
			}
			table.AddRow(glyph.PriorityName(t.NormalizedPriority()), due, t.Content)
		}
		_, _ = fmt.Fprintln(color.Output, table)
		fmt.Println("")
	}
}
