// Package store persists transient workflow snapshots (rankings, filters,
// time-block configuration, chat history) under explicit versioned keys. It
// replaces the original application's ad hoc browser local-storage access
// with one injected repository interface.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Well-known snapshot keys.
const (
	KeyRanking     = "ranking"
	KeyTimeBlocks  = "time-blocks"
	KeyFocusFilter = "focus-filter"
	KeyMatrix      = "matrix"
	KeyChatHistory = "chat-history"
)

// CurrentSchema tags every snapshot written by this version of the code.
const CurrentSchema = "v1"

// Snapshots is the persistence contract for workflow state. A snapshot that
// is missing, or stored with an unreadable or incompatible schema, loads as
// absent; an error alongside describes why so callers can log the recoverable
// condition.
type Snapshots interface {
	Load(key string, out any) (bool, error)
	Save(key string, value any) error
	Delete(key string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Snapshots repository backed by diskv using the provided
// config. A nil config falls back to LoadConfig.
func Load(cfg Config) (Snapshots, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &snapshots{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type snapshots struct {
	d        *diskv.Diskv
	basePath string
}

// envelope wraps every stored value with its schema tag.
type envelope struct {
	Schema  string          `json:"schema"`
	SavedAt string          `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

func (s *snapshots) Load(key string, out any) (bool, error) {
	if !s.d.Has(key) {
		return false, nil
	}
	raw, err := s.d.Read(key)
	if err != nil {
		return false, fmt.Errorf("store: read snapshot %q: %w", key, err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("store: snapshot %q is malformed: %w", key, err)
	}
	if env.Schema != CurrentSchema {
		return false, fmt.Errorf("store: snapshot %q has schema %q, want %q", key, env.Schema, CurrentSchema)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("store: decode snapshot %q: %w", key, err)
	}
	return true, nil
}

func (s *snapshots) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode snapshot %q: %w", key, err)
	}
	env := envelope{
		Schema:  CurrentSchema,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Data:    data,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("store: encode envelope %q: %w", key, err)
	}
	if err := s.d.Write(key, raw); err != nil {
		return fmt.Errorf("store: write snapshot %q: %w", key, err)
	}
	return nil
}

func (s *snapshots) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

func (s *snapshots) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
