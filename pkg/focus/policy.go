// Package focus builds the ordered, deduplicated queue a user works through
// one task at a time, and tracks the state of that workflow.
package focus

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/agenda/pkg/task"
)

// Source yields candidate tasks. Sources are read-only; the policy never
// mutates what they return.
type Source func(ctx context.Context) ([]*task.Task, error)

// Policy merges up to three sources into one queue with fixed precedence:
// tasks matching an ad hoc filter first, then a previously computed ranking,
// then the remaining backlog. Within each source, tasks are sorted by
// priority descending and due date ascending before concatenation. A task
// contributed by an earlier source is excluded from later ones.
type Policy struct {
	Filter  Source
	Ranking Source
	Backlog Source

	// Warn receives recoverable source failures. Defaults to stderr.
	Warn func(format string, args ...any)
}

func (p *Policy) warn(format string, args ...any) {
	if p.Warn != nil {
		p.Warn(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// BuildQueue fetches each source in precedence order and assembles the focus
// queue. An empty, missing, or failing source contributes zero tasks; the
// policy proceeds with the remaining sources. The sources' slices are read as
// snapshots and never reordered in place.
func (p *Policy) BuildQueue(ctx context.Context) []*task.Task {
	type sourced struct {
		name string
		src  Source
	}
	sources := []sourced{
		{name: "filter", src: p.Filter},
		{name: "ranking", src: p.Ranking},
		{name: "backlog", src: p.Backlog},
	}

	queue := make([]*task.Task, 0)
	seen := make(map[string]bool)
	for _, s := range sources {
		if s.src == nil {
			continue
		}
		fetched, err := s.src(ctx)
		if err != nil {
			p.warn("focus: %s source unavailable: %v", s.name, err)
			continue
		}

		batch := make([]*task.Task, 0, len(fetched))
		for _, t := range fetched {
			if t == nil || t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			batch = append(batch, t)
		}
		task.SortStable(batch)
		queue = append(queue, batch...)
	}
	return queue
}
