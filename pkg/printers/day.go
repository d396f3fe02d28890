package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/timeutil"
)

// trackCells is the horizontal resolution of the rendered day track; task
// bars map their percentage geometry onto this many cells.
const trackCells = 48

// Day renders a day schedule as a granule-by-granule track. Each line is one
// 15-minute slot: the clock, the background block marker, the packed task
// bars, and the names of tasks starting in that slot. Empty stretches of the
// day outside the first and last scheduled task collapse.
func (pp *PrettyPrint) Day(day *schedule.DaySchedule) {
	pp.Title(day.Date.Format("Monday, January 2, 2006"))

	tasks := make([]*schedule.ScheduledTask, 0, len(day.ScheduledTasks))
	invalid := make([]*schedule.ScheduledTask, 0)
	for _, t := range day.ScheduledTasks {
		if t.Invalid {
			invalid = append(invalid, t)
			continue
		}
		tasks = append(tasks, t)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartDateTime.Before(tasks[j].StartDateTime)
	})

	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" nothing scheduled\n\n")
		pp.unplaced(invalid)
		return
	}

	first, last := visibleRange(day, tasks)
	clock := color.New(color.Faint)
	blockColor := map[schedule.BlockType]*color.Color{
		schedule.BlockWork:     color.New(color.FgBlue),
		schedule.BlockPersonal: color.New(color.FgMagenta),
		schedule.BlockBreak:    color.New(color.FgYellow),
	}

	for g := first; g <= last; g++ {
		slotStart := timeutil.GranuleStart(g)
		typ, label := schedule.ClassifyGranule(g, day.TimeBlocks)

		_, _ = clock.Printf("%s ", timeutil.FormatClock(slotStart))
		_, _ = blockColor[typ].Print(glyph.Block(string(typ)).Symbol + " ")
		fmt.Print(trackLine(tasks, slotStart))

		if names := startingNames(tasks, slotStart); names != "" {
			fmt.Print("  " + names)
		} else if label != "" && typ != schedule.BlockWork {
			_, _ = color.New(color.Faint, color.Italic).Printf("  %s", label)
		}
		fmt.Println("")
	}
	fmt.Println("")
	pp.unplaced(invalid)
}

func (pp *PrettyPrint) unplaced(tasks []*schedule.ScheduledTask) {
	if len(tasks) == 0 {
		return
	}
	f := color.New(color.Faint, color.Italic)
	for _, t := range tasks {
		_, _ = f.Printf(" unplaced (bad start %q): %s\n", t.Start, t.Content)
	}
	fmt.Println("")
}

// visibleRange clamps the rendered granules to the scheduled span, with one
// slot of padding on each side.
func visibleRange(day *schedule.DaySchedule, tasks []*schedule.ScheduledTask) (first, last int) {
	midnight := timeutil.OnDate(day.Date, 0)
	first = timeutil.GranulesPerDay - 1
	last = 0
	for _, t := range tasks {
		startG := int(t.StartDateTime.Sub(midnight).Minutes()) / timeutil.GranuleMinutes
		endG := int(t.EndDateTime.Sub(midnight).Minutes()-1) / timeutil.GranuleMinutes
		if startG < first {
			first = startG
		}
		if endG > last {
			last = endG
		}
	}
	if first > 0 {
		first--
	}
	if last < timeutil.GranulesPerDay-1 {
		last++
	}
	if last >= timeutil.GranulesPerDay {
		last = timeutil.GranulesPerDay - 1
	}
	return first, last
}

// trackLine draws the packed bars crossing the given slot, using each task's
// percentage geometry to position it on the cell grid.
func trackLine(tasks []*schedule.ScheduledTask, slotStart int) string {
	cells := make([]rune, trackCells)
	for i := range cells {
		cells[i] = ' '
	}
	for _, t := range tasks {
		if !coversSlot(t, slotStart) {
			continue
		}
		from := int(t.Left / 100 * trackCells)
		to := int((t.Left + t.Width) / 100 * trackCells)
		if to > trackCells {
			to = trackCells
		}
		bar := barRune(t.Priority)
		for i := from; i < to; i++ {
			cells[i] = bar
		}
		if from < trackCells {
			cells[from] = '▏'
		}
	}
	return string(cells)
}

func coversSlot(t *schedule.ScheduledTask, slotStart int) bool {
	startMin := t.StartDateTime.Hour()*60 + t.StartDateTime.Minute()
	endMin := startMin + int(t.EndDateTime.Sub(t.StartDateTime).Minutes())
	return startMin < slotStart+timeutil.GranuleMinutes && slotStart < endMin
}

func barRune(priority int) rune {
	switch priority {
	case 4:
		return '█'
	case 3:
		return '▓'
	case 2:
		return '▒'
	default:
		return '░'
	}
}

func startingNames(tasks []*schedule.ScheduledTask, slotStart int) string {
	names := make([]string, 0, 2)
	for _, t := range tasks {
		startMin := t.StartDateTime.Hour()*60 + t.StartDateTime.Minute()
		if startMin >= slotStart && startMin < slotStart+timeutil.GranuleMinutes {
			names = append(names, fmt.Sprintf("%s %s", glyph.Priority(t.Priority).Symbol, t.Content))
		}
	}
	return strings.Join(names, ", ")
}
