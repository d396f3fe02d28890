package teaui

import (
	"context"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/timeutil"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeDrag
	modeHelp
)

// trackWidth is the horizontal cell budget the packed task bars map their
// percentage geometry onto.
const trackWidth = 40

// Model is the day planner UI state. The day schedule itself is derived
// data: every change goes to the service and the day is re-fetched.
type Model struct {
	svc  *app.Service
	ctx  context.Context
	mode mode

	date time.Time
	day  *schedule.DaySchedule
	drag *schedule.DragController

	// cursor indexes the day's scheduled tasks in start order.
	cursor    int
	grabbed   *schedule.ScheduledTask
	grabStart int // minutes from midnight while dragging

	status string
	theme  Theme

	termWidth  int
	termHeight int
}

// New creates a planner model for the given date.
func New(svc *app.Service, date time.Time) Model {
	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		mode:   modeNormal,
		date:   date,
		theme:  Default(),
		status: "NORMAL: h/l day, j/k task, enter grab, x complete, r refresh, ? help",
	}
	if svc != nil {
		m.drag = svc.Dragger(date)
	}
	return m
}

// Init loads the initial day.
func (m Model) Init() tea.Cmd {
	return m.loadDay()
}

func (m *Model) loadDay() tea.Cmd {
	svc, date := m.svc, m.date
	return func() tea.Msg {
		if svc == nil {
			return dayLoadedMsg{&schedule.DaySchedule{Date: date}}
		}
		day, err := svc.Day(context.Background(), date)
		if err != nil {
			return errMsg{err}
		}
		return dayLoadedMsg{day}
	}
}

// messages
type errMsg struct{ err error }
type dayLoadedMsg struct{ day *schedule.DaySchedule }
type droppedMsg struct{ err error }

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case dayLoadedMsg:
		m.day = msg.day
		m.clampCursor()
	case droppedMsg:
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		} else {
			m.status = "Moved"
		}
		cmds = append(cmds, m.loadDay())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
		case modeDrag:
			cmds = m.updateDrag(msg.String(), cmds)
		case modeNormal:
			cmds = m.updateNormal(msg.String(), cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(key string, cmds []tea.Cmd) []tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		cmds = append(cmds, tea.Quit)

	// day navigation
	case "h", "left":
		m.setDate(m.date.AddDate(0, 0, -1))
		cmds = append(cmds, m.loadDay())
	case "l", "right":
		m.setDate(m.date.AddDate(0, 0, 1))
		cmds = append(cmds, m.loadDay())
	case "t":
		m.setDate(time.Now())
		cmds = append(cmds, m.loadDay())

	// task cursor
	case "j", "down":
		if m.cursor < len(m.ordered())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if n := len(m.ordered()); n > 0 {
			m.cursor = n - 1
		}

	// grab
	case "enter", " ":
		if st := m.current(); st != nil && m.drag != nil {
			m.drag.BeginDrag(st)
			m.grabbed = st
			start, err := timeutil.ParseClock(st.Start)
			if err != nil {
				start = 0
			}
			m.grabStart = timeutil.SnapToGranule(start)
			m.mode = modeDrag
			m.status = "DRAG: j/k move 15m, J/K move 1h, enter drop, esc cancel"
		}

	// complete
	case "x":
		if st := m.current(); st != nil && m.svc != nil {
			if err := m.svc.Complete(m.ctx, st.TaskID); err != nil {
				cmds = append(cmds, func() tea.Msg { return errMsg{err} })
			} else {
				m.status = "Completed"
				cmds = append(cmds, m.loadDay())
			}
		}

	case "r":
		cmds = append(cmds, m.loadDay())
	case "?":
		m.mode = modeHelp
	}
	return cmds
}

func (m *Model) updateDrag(key string, cmds []tea.Cmd) []tea.Cmd {
	step := 0
	switch key {
	case "esc", "q":
		if m.drag != nil {
			m.drag.CancelDrag()
		}
		m.grabbed = nil
		m.mode = modeNormal
		m.status = "Drag cancelled"
		return cmds
	case "enter":
		drag, grabbed, start := m.drag, m.grabbed, m.grabStart
		m.grabbed = nil
		m.mode = modeNormal
		m.status = "Dropping..."
		cmds = append(cmds, func() tea.Msg {
			err := drag.CompleteDrop(context.Background(), grabbed, timeutil.FormatClock(start))
			return droppedMsg{err}
		})
		return cmds
	case "j", "down":
		step = timeutil.GranuleMinutes
	case "k", "up":
		step = -timeutil.GranuleMinutes
	case "J":
		step = 60
	case "K":
		step = -60
	}

	if step != 0 {
		next := m.grabStart + step
		if next < 0 {
			next = 0
		}
		if next > timeutil.MinutesPerDay-timeutil.GranuleMinutes {
			next = timeutil.MinutesPerDay - timeutil.GranuleMinutes
		}
		m.grabStart = next
		m.status = "DRAG: drop at " + timeutil.FormatClock(m.grabStart)
	}
	return cmds
}

func (m *Model) setDate(date time.Time) {
	m.date = date
	m.cursor = 0
	if m.svc != nil {
		m.drag = m.svc.Dragger(date)
	}
}

// ordered returns the day's valid entries in start order; invalid entries
// sort last so they stay reachable by the cursor.
func (m *Model) ordered() []*schedule.ScheduledTask {
	if m.day == nil {
		return nil
	}
	out := make([]*schedule.ScheduledTask, len(m.day.ScheduledTasks))
	copy(out, m.day.ScheduledTasks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Invalid != out[j].Invalid {
			return !out[i].Invalid
		}
		return out[i].StartDateTime.Before(out[j].StartDateTime)
	})
	return out
}

func (m *Model) current() *schedule.ScheduledTask {
	tasks := m.ordered()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return tasks[m.cursor]
}

func (m *Model) clampCursor() {
	if n := len(m.ordered()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the granule track with the task list beside it.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Header.Render(m.date.Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	if m.day == nil {
		b.WriteString("loading...\n")
	} else {
		b.WriteString(m.renderTrack())
	}

	if m.mode == modeHelp {
		help := "Keys: h/l previous/next day, t today, j/k select, gg/G top/bottom, " +
			"enter grab then j/k/J/K to a new slot and enter to drop, esc cancel, " +
			"x complete, r refresh, q quit"
		width := m.termWidth
		if width <= 0 {
			width = 80
		}
		b.WriteString("\n" + m.theme.Help.Render(wordwrap.String(help, width)))
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.Status.Render(m.status))
	return b.String()
}

// renderTrack draws one line per 15-minute granule between the day's first
// and last scheduled minute, with the background block glyph and the packed
// task bars mapped onto trackWidth cells.
func (m Model) renderTrack() string {
	tasks := m.ordered()
	if len(tasks) == 0 {
		return "nothing scheduled\n"
	}

	first, last := m.visibleGranules(tasks)
	var b strings.Builder
	for g := first; g <= last; g++ {
		minute := timeutil.GranuleStart(g)
		bt, _ := schedule.ClassifyGranule(g, m.day.TimeBlocks)

		b.WriteString(m.theme.Clock.Render(timeutil.FormatClock(minute)))
		b.WriteString(" ")
		b.WriteString(m.theme.Block(bt).Render(glyph.Block(string(bt)).Symbol))
		b.WriteString(" ")
		b.WriteString(m.renderGranuleRow(tasks, minute))
		b.WriteString("\n")
	}

	for _, st := range tasks {
		if st.Invalid {
			b.WriteString(m.theme.Invalid.Render("?     " + st.Content))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderGranuleRow lays task bars and starting-task names onto one row.
func (m Model) renderGranuleRow(tasks []*schedule.ScheduledTask, minute int) string {
	row := make([]rune, trackWidth)
	for i := range row {
		row[i] = ' '
	}

	var names []string
	selected := m.current()
	for _, st := range tasks {
		if st.Invalid {
			continue
		}
		start, end := m.barMinutes(st)
		if minute < start || minute >= end {
			continue
		}
		from := int(st.Left / 100 * trackWidth)
		to := from + int(st.Width/100*trackWidth)
		if to > trackWidth {
			to = trackWidth
		}
		bar := '│'
		if st == m.grabbed {
			bar = '┃'
		}
		for i := from; i < to && i >= 0; i++ {
			if row[i] == ' ' {
				row[i] = bar
			}
		}
		if minute == start {
			name := st.Content
			switch {
			case st == m.grabbed:
				name = m.theme.Dragged.Render("↕ " + name)
			case st == selected:
				name = m.theme.Selected.Render(name)
			}
			names = append(names, name)
		}
	}

	out := string(row)
	if len(names) > 0 {
		out += " " + strings.Join(names, "  ")
	}
	return out
}

// barMinutes places a task bar on the day's minute line. The grabbed task
// follows the pending drop slot so the drag is visible before persisting.
func (m Model) barMinutes(st *schedule.ScheduledTask) (int, int) {
	duration := int(st.EndDateTime.Sub(st.StartDateTime).Minutes())
	if duration <= 0 {
		duration = schedule.DefaultDurationMinutes
	}
	start := st.StartDateTime.Hour()*60 + st.StartDateTime.Minute()
	if st == m.grabbed {
		start = m.grabStart
	}
	return start, start + duration
}

// visibleGranules collapses the day to the span actually in use, padded by
// one granule on each side.
func (m Model) visibleGranules(tasks []*schedule.ScheduledTask) (int, int) {
	first, last := timeutil.GranulesPerDay, -1
	for _, st := range tasks {
		if st.Invalid {
			continue
		}
		start, end := m.barMinutes(st)
		fg := start / timeutil.GranuleMinutes
		lg := (end - 1) / timeutil.GranuleMinutes
		if fg < first {
			first = fg
		}
		if lg > last {
			last = lg
		}
	}
	if last < 0 {
		return 0, 0
	}
	if first > 0 {
		first--
	}
	if last < timeutil.GranulesPerDay-1 {
		last++
	}
	return first, last
}

// Run launches the day planner.
func Run(svc *app.Service, date time.Time) error {
	p := tea.NewProgram(New(svc, date), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
