package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/agenda/pkg/app"
	chatpkg "tableflip.dev/agenda/pkg/chat"
	"tableflip.dev/agenda/pkg/glyph"
	"tableflip.dev/agenda/pkg/store"
)

// historyLimit caps how many past turns are replayed to the model.
const historyLimit = 20

// Chat sends one question to the assistant with today's schedule as
// context, keeping a rolling conversation history in the snapshot store.
type Chat struct {
	Message   string
	Reset     bool
	Client    *chatpkg.Client
	Service   *app.Service
	Snapshots store.Snapshots
}

func (n *Chat) Do(ctx context.Context) error {
	if n.Client == nil {
		return errors.New("can not chat, no assistant configured")
	}

	if n.Reset {
		if n.Snapshots != nil {
			if err := n.Snapshots.Delete(store.KeyChatHistory); err != nil {
				return err
			}
		}
		fmt.Println("conversation cleared")
		if n.Message == "" {
			return nil
		}
	}

	if strings.TrimSpace(n.Message) == "" {
		return errors.New("can not chat, nothing to say")
	}

	var history []chatpkg.Message
	if n.Snapshots != nil {
		if _, err := n.Snapshots.Load(store.KeyChatHistory, &history); err != nil {
			fmt.Printf("warning: could not load conversation: %v\n", err)
			history = nil
		}
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := []chatpkg.Message{{Role: "system", Content: n.systemPrompt(ctx)}}
	messages = append(messages, history...)
	messages = append(messages, chatpkg.Message{Role: "user", Content: n.Message})

	reply, err := n.Client.Complete(ctx, messages)
	if err != nil {
		return err
	}

	fmt.Println(reply.Content)

	if n.Snapshots != nil {
		history = append(history,
			chatpkg.Message{Role: "user", Content: n.Message},
			reply)
		if err := n.Snapshots.Save(store.KeyChatHistory, history); err != nil {
			fmt.Printf("warning: could not save conversation: %v\n", err)
		}
	}
	return nil
}

// systemPrompt describes the assistant's job and folds in today's tasks so
// answers can reference the actual schedule.
func (n *Chat) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("You are a personal productivity assistant. ")
	b.WriteString("Answer briefly and concretely about the user's day.\n")

	if n.Service == nil {
		return b.String()
	}
	day, err := n.Service.Day(ctx, time.Now())
	if err != nil || day == nil {
		return b.String()
	}

	b.WriteString("Today's schedule:\n")
	for _, st := range day.ScheduledTasks {
		b.WriteString(" - ")
		if !st.Invalid {
			b.WriteString(st.StartDateTime.Format("15:04"))
			b.WriteString(" ")
		}
		b.WriteString(st.Content)
		b.WriteString(" (")
		b.WriteString(glyph.PriorityName(st.Priority))
		b.WriteString(")\n")
	}
	return b.String()
}
