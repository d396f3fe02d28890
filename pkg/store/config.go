package store

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings shared across commands. Values come from an
// optional .agenda.yaml, AGENDA_* environment variables, and defaults, in
// that order of precedence.
type Config interface {
	BasePath() string
	TaskSourceToken() string
	TaskSourceBaseURL() string
	ChatEndpoint() string
	ChatAPIKey() string
	ChatModel() string
	PixelsPerMinute() float64
}

func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.agenda.db")
	viper.SetDefault("todoist.url", "https://api.todoist.com/rest/v2")
	viper.SetDefault("chat.endpoint", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("chat.model", "gpt-4o-mini")
	viper.SetDefault("day.pixelsPerMinute", 1.0)

	viper.SetConfigName(".agenda") // .yaml is implicit
	viper.SetEnvPrefix("AGENDA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	return &fileConfig{
		Path:         viper.GetString("path"),
		Token:        viper.GetString("todoist.token"),
		URL:          viper.GetString("todoist.url"),
		Endpoint:     viper.GetString("chat.endpoint"),
		Key:          viper.GetString("chat.key"),
		Model:        viper.GetString("chat.model"),
		PixelsPerMin: viper.GetFloat64("day.pixelsPerMinute"),
	}, nil
}

type fileConfig struct {
	Path         string  `json:"path"`
	Token        string  `json:"token"`
	URL          string  `json:"url"`
	Endpoint     string  `json:"endpoint"`
	Key          string  `json:"key"`
	Model        string  `json:"model"`
	PixelsPerMin float64 `json:"pixelsPerMinute"`
}

func (f *fileConfig) BasePath() string {
	expanded, err := homedir.Expand(f.Path)
	if err != nil {
		return f.Path
	}
	return expanded
}

func (f *fileConfig) TaskSourceToken() string   { return f.Token }
func (f *fileConfig) TaskSourceBaseURL() string { return f.URL }
func (f *fileConfig) ChatEndpoint() string      { return f.Endpoint }
func (f *fileConfig) ChatAPIKey() string        { return f.Key }
func (f *fileConfig) ChatModel() string         { return f.Model }
func (f *fileConfig) PixelsPerMinute() float64  { return f.PixelsPerMin }
