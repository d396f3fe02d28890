package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/timeutil"
	triagepkg "tableflip.dev/agenda/pkg/triage"
)

// Triage walks the unscheduled inbox one task at a time, asking what to do
// with each: complete it now, put it on the calendar, park it, or delete it.
type Triage struct {
	Filter  string
	Service *app.Service
}

func (n *Triage) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not triage, no service")
	}

	filter := n.Filter
	if filter == "" {
		filter = "no date"
	}
	tasks, err := n.Service.Tasks(ctx, filter)
	if err != nil {
		return err
	}
	inbox := triagepkg.Inbox(tasks)

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount("Triage", len(inbox))
	if len(inbox) == 0 {
		fmt.Println(" inbox zero")
		return nil
	}

	actions := triagepkg.Actions{
		Complete: n.Service.Complete,
		Schedule: n.Service.Move,
		Update:   n.Service.Source.Update,
		Delete:   n.Service.Source.Delete,
	}

	for _, t := range inbox {
		title := fmt.Sprintf("%s %s %s",
			glyph.Priority(t.NormalizedPriority()).Symbol,
			glyph.PriorityName(t.NormalizedPriority()),
			t.Content)

		var decision triagepkg.Decision
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[triagepkg.Decision]().
				Title(title).
				Description(t.Description).
				Options(
					huh.NewOption("Do now", triagepkg.DecisionDoNow),
					huh.NewOption("Schedule", triagepkg.DecisionSchedule),
					huh.NewOption("Someday", triagepkg.DecisionSomeday),
					huh.NewOption("Delete", triagepkg.DecisionDelete),
					huh.NewOption("Keep in inbox", triagepkg.DecisionKeep),
					huh.NewOption("Stop", triagepkg.Decision("stop")),
				).
				Value(&decision),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if decision == "stop" {
			return nil
		}

		var sched triagepkg.Scheduling
		if decision == triagepkg.DecisionSchedule {
			sched, err = askScheduling()
			if err != nil {
				return err
			}
		}

		if err := triagepkg.Apply(ctx, actions, t, decision, sched); err != nil {
			fmt.Printf("warning: %s: %v\n", t.ID, err)
		}
	}
	return nil
}

// askScheduling prompts for when the task should land on the calendar.
func askScheduling() (triagepkg.Scheduling, error) {
	day := "today"
	start := "09:00"
	estimate := ""

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which day?").
			Options(
				huh.NewOption("Today", "today"),
				huh.NewOption("Tomorrow", "tomorrow"),
			).
			Value(&day),
		huh.NewInput().
			Title("Start (HH:mm)").
			Value(&start).
			Validate(func(s string) error {
				_, err := timeutil.ParseClock(s)
				return err
			}),
		huh.NewInput().
			Title("Estimate (30m, 1h, blank for default)").
			Value(&estimate),
	))
	if err := form.Run(); err != nil {
		return triagepkg.Scheduling{}, err
	}

	date := time.Now()
	if day == "tomorrow" {
		date = date.AddDate(0, 0, 1)
	}

	minutes := 0
	if estimate != "" {
		m, _, err := timeutil.ParseEstimate(estimate)
		if err != nil {
			fmt.Printf("warning: bad estimate %q, leaving duration unset\n", estimate)
		} else {
			minutes = m
		}
	}

	return triagepkg.Scheduling{Date: date, Start: start, DurationMinutes: minutes}, nil
}
