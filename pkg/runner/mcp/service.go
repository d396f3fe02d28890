// Package mcp provides the Model Context Protocol server integration for
// agenda.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/matrix"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/task"
	"tableflip.dev/agenda/pkg/timeutil"
)

const dateLayout = "2006-01-02"

// Service wraps the app service with transport-friendly projections shared
// by the MCP tools and resources.
type Service struct {
	App *app.Service
}

// NewService builds a service wrapper around the app layer.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID              string   `json:"id"`
	Content         string   `json:"content"`
	Description     string   `json:"description,omitempty"`
	Priority        int      `json:"priority"`
	PriorityName    string   `json:"priorityName"`
	Category        string   `json:"category,omitempty"`
	Labels          []string `json:"labels,omitempty"`
	Due             string   `json:"due,omitempty"`
	DueHasTime      bool     `json:"dueHasTime,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Completed       bool     `json:"completed,omitempty"`
}

// SlotDTO is one laid-out calendar entry of a day schedule.
type SlotDTO struct {
	ID         string  `json:"id"`
	TaskID     string  `json:"taskId"`
	Content    string  `json:"content"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Column     int     `json:"column"`
	MaxColumns int     `json:"maxColumns"`
	LeftPct    float64 `json:"leftPct"`
	WidthPct   float64 `json:"widthPct"`
	TopPx      float64 `json:"topPx"`
	HeightPx   float64 `json:"heightPx"`
	Invalid    bool    `json:"invalid,omitempty"`
}

// DayDTO is the full rendered day.
type DayDTO struct {
	Date   string               `json:"date"`
	Blocks []schedule.TimeBlock `json:"blocks,omitempty"`
	Slots  []SlotDTO            `json:"slots"`
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("app service is not configured")
	}
	return nil
}

// parseDate resolves "" to today and otherwise expects ISO dates.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

// Day lays out the schedule for the given ISO date.
func (s *Service) Day(ctx context.Context, rawDate string) (*DayDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}

	day, err := s.App.Day(ctx, date)
	if err != nil {
		return nil, err
	}

	dto := &DayDTO{
		Date:   day.Date.Format(dateLayout),
		Blocks: day.TimeBlocks,
		Slots:  make([]SlotDTO, 0, len(day.ScheduledTasks)),
	}
	for _, st := range day.ScheduledTasks {
		dto.Slots = append(dto.Slots, SlotDTO{
			ID:         st.ID,
			TaskID:     st.TaskID,
			Content:    st.Content,
			Start:      st.StartDateTime.Format("15:04"),
			End:        st.EndDateTime.Format("15:04"),
			Column:     st.Column,
			MaxColumns: st.MaxColumns,
			LeftPct:    st.Left,
			WidthPct:   st.Width,
			TopPx:      st.Top,
			HeightPx:   st.Height,
			Invalid:    st.Invalid,
		})
	}
	return dto, nil
}

// MoveTask reschedules a task to a new "HH:mm" start on the given date.
func (s *Service) MoveTask(ctx context.Context, id, newStart, rawDate string) (*DayDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	if _, err := timeutil.ParseClock(newStart); err != nil {
		return nil, err
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}

	if err := s.App.Move(ctx, id, date, newStart); err != nil {
		return nil, err
	}
	return s.Day(ctx, date.Format(dateLayout))
}

// CompleteTask closes the task at the source.
func (s *Service) CompleteTask(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == "" {
		return errors.New("id is required")
	}
	return s.App.Complete(ctx, id)
}

// ReopenTask reverses a completion.
func (s *Service) ReopenTask(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == "" {
		return errors.New("id is required")
	}
	return s.App.Source.Reopen(ctx, id)
}

// ListTasks returns tasks matching a source-side filter expression.
func (s *Service) ListTasks(ctx context.Context, filter string) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	tasks, err := s.App.Tasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	task.SortStable(tasks)
	return toDTOs(tasks), nil
}

// FocusQueue builds the current focus ordering.
func (s *Service) FocusQueue(ctx context.Context) ([]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	policy, err := s.App.FocusPolicy("")
	if err != nil {
		return nil, err
	}
	return toDTOs(policy.BuildQueue(ctx)), nil
}

// Matrix classifies open tasks into the four urgency/importance quadrants,
// keyed by quadrant name.
func (s *Service) Matrix(ctx context.Context) (map[string][]TaskDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	result, err := s.App.BuildMatrix(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	out := make(map[string][]TaskDTO, len(result.Quadrants))
	for q := matrix.QuadrantUrgentImportant; q <= matrix.QuadrantNeither; q++ {
		out[q.String()] = toDTOs(result.Quadrants[q])
	}
	return out, nil
}

// TimeBlocks returns the configured background blocks.
func (s *Service) TimeBlocks(ctx context.Context) ([]schedule.TimeBlock, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.TimeBlocks()
}

func toDTOs(tasks []*task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		out = append(out, toDTO(t))
	}
	return out
}

func toDTO(t *task.Task) TaskDTO {
	dto := TaskDTO{
		ID:              t.ID,
		Content:         t.Content,
		Description:     t.Description,
		Priority:        t.NormalizedPriority(),
		PriorityName:    glyph.PriorityName(t.NormalizedPriority()),
		Category:        string(t.Category()),
		Labels:          t.Labels,
		DurationMinutes: t.DurationMinutes,
		Completed:       t.Completed,
	}
	if t.Due != nil {
		dto.DueHasTime = t.Due.HasTime
		if !t.Due.Date.IsZero() {
			if t.Due.HasTime {
				dto.Due = t.Due.Date.Format("2006-01-02T15:04:05")
			} else {
				dto.Due = t.Due.Date.Format(dateLayout)
			}
		}
	}
	return dto
}
