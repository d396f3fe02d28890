package focus

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"tableflip.dev/agenda/pkg/app"
	focuspkg "tableflip.dev/agenda/pkg/focus"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/printers"
)

// Focus builds the focus queue and walks it one task at a time. With List
// set, it prints the queue and exits instead of entering the workflow.
type Focus struct {
	Filter  string
	List    bool
	Service *app.Service
}

func (n *Focus) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not focus, no service")
	}

	if n.Filter != "" {
		if err := n.Service.SaveFocusFilter(n.Filter); err != nil {
			fmt.Printf("warning: could not remember filter: %v\n", err)
		}
	}

	policy, err := n.Service.FocusPolicy(n.Filter)
	if err != nil {
		return err
	}

	session := focuspkg.NewSession()
	session.Load(ctx, policy)

	pp := printers.PrettyPrint{}
	fmt.Println("")

	if n.List {
		pp.TitleWithCount("Focus queue", session.Remaining())
		queue := policy.BuildQueue(ctx)
		pp.Queue(queue)
		return nil
	}

	if session.State() == focuspkg.StateFinished {
		pp.Title("Focus")
		fmt.Println(" nothing to focus on")
		return nil
	}

	for session.State() == focuspkg.StateFocusing {
		current, ok := session.Current()
		if !ok {
			break
		}

		title := fmt.Sprintf("%s %s %s",
			glyph.Priority(current.NormalizedPriority()).Symbol,
			glyph.PriorityName(current.NormalizedPriority()),
			current.Content)

		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(current.Description).
				Options(
					huh.NewOption("Complete", "complete"),
					huh.NewOption("Skip", "skip"),
					huh.NewOption("Stop focusing", "stop"),
				).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			return err
		}

		switch action {
		case "complete":
			if err := n.Service.Complete(ctx, current.ID); err != nil {
				fmt.Printf("warning: could not complete %s: %v\n", current.ID, err)
				session.Skip()
				continue
			}
			session.Complete()
		case "skip":
			session.Skip()
		default:
			fmt.Printf("stopped with %d tasks remaining\n", session.Remaining())
			return nil
		}
	}

	fmt.Println("queue finished")
	return nil
}
