// Package config merges command-line flags, ASSISTANT_* environment
// variables and the workspace config.json into the settings a session
// runs with. Flags win over the environment, which wins over config.json.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/amirbrooks/assistant/internal/store"
)

const DefaultRoot = "~/.assistant"

// Env is the environment layer.
type Env struct {
	Root         string `env:"ASSISTANT_ROOT"`
	Backend      string `env:"ASSISTANT_BACKEND"`
	BirthdayDays int    `env:"ASSISTANT_BIRTHDAY_DAYS"`
	LogLevel     string `env:"ASSISTANT_LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"ASSISTANT_LOG_FILE"`
	// NoColor follows no-color.org: any non-empty value disables color.
	NoColor      string `env:"NO_COLOR"`
}

// LoadEnv reads the environment layer.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Flags holds command-line values. Zero values mean "not given".
type Flags struct {
	Root         string
	Backend      string
	BirthdayDays int
	Verbose      bool
	LogFile      string
	NoColor      bool
}

type Settings struct {
	Root         string
	Backend      string
	BirthdayDays int
	LogLevel     string
	LogFile      string
	Color        bool
}

// ResolveRoot picks the workspace directory before config.json can be read.
func ResolveRoot(f Flags, e Env) string {
	return first(f.Root, e.Root, DefaultRoot)
}

// Resolve layers flags over env over the workspace config.
func Resolve(f Flags, e Env, root string, ws store.Config) (Settings, error) {
	s := Settings{
		Root:         root,
		Backend:      strings.ToLower(first(f.Backend, e.Backend, ws.Backend, store.BackendFile)),
		BirthdayDays: firstPositive(f.BirthdayDays, e.BirthdayDays, ws.BirthdayDays, store.DefaultBirthdayDays),
		LogLevel:     strings.ToLower(first(e.LogLevel, "info")),
		LogFile:      first(f.LogFile, e.LogFile, filepath.Join(root, "logs", "assistant.log")),
		Color:        !f.NoColor && e.NoColor == "",
	}
	if f.Verbose {
		s.LogLevel = "debug"
	}
	switch s.Backend {
	case store.BackendFile, store.BackendSQLite:
	default:
		return Settings{}, fmt.Errorf("%w: backend must be %q or %q, got %q", store.ErrInvalid, store.BackendFile, store.BackendSQLite, s.Backend)
	}
	if f.BirthdayDays < 0 || e.BirthdayDays < 0 {
		return Settings{}, fmt.Errorf("%w: birthday days must be positive", store.ErrInvalid)
	}
	return s, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
