package commands

import (
	"errors"
	"fmt"
	"os"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/chat"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/todoist"
)

// loadService wires the configured task source, snapshot store, and layout
// geometry into one app service. A missing snapshot store only warns; the
// commands that need it fail later with a clearer message.
func loadService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.TaskSourceToken() == "" {
		return nil, errors.New("no task source token configured, set AGENDA_TODOIST_TOKEN or todoist.token in .agenda.yaml")
	}

	snapshots, err := store.Load(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: snapshot store unavailable: %v\n", err)
		snapshots = nil
	}

	return &app.Service{
		Source:    todoist.New(cfg.TaskSourceBaseURL(), cfg.TaskSourceToken()),
		Snapshots: snapshots,
		Geometry:  schedule.Geometry{PixelsPerMinute: cfg.PixelsPerMinute()},
	}, nil
}

// loadChat builds the assistant client from the same config file.
func loadChat() (*chat.Client, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.ChatAPIKey() == "" {
		return nil, errors.New("no assistant key configured, set AGENDA_CHAT_KEY or chat.key in .agenda.yaml")
	}
	return chat.New(cfg.ChatEndpoint(), cfg.ChatAPIKey(), cfg.ChatModel()), nil
}
