package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirbrooks/assistant/internal/store"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnv(t *testing.T) {
	unsetEnv(t, "ASSISTANT_LOG_LEVEL", "NO_COLOR")
	t.Setenv("ASSISTANT_ROOT", "/tmp/assistant")
	t.Setenv("ASSISTANT_BACKEND", "sqlite")
	t.Setenv("ASSISTANT_BIRTHDAY_DAYS", "10")
	t.Setenv("ASSISTANT_LOG_FILE", "/tmp/a.log")

	e, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{
		Root:         "/tmp/assistant",
		Backend:      "sqlite",
		BirthdayDays: 10,
		LogLevel:     "info",
		LogFile:      "/tmp/a.log",
	}, e)
}

func TestNoColorAcceptsAnyValue(t *testing.T) {
	unsetEnv(t, "ASSISTANT_LOG_LEVEL", "ASSISTANT_BACKEND", "ASSISTANT_BIRTHDAY_DAYS")
	for _, v := range []string{"1", "yes", "please", "false"} {
		t.Setenv("NO_COLOR", v)
		e, err := LoadEnv()
		require.NoError(t, err, "NO_COLOR=%s", v)
		s, err := Resolve(Flags{}, e, "/ws", store.Config{})
		require.NoError(t, err)
		assert.False(t, s.Color, "NO_COLOR=%s", v)
	}
}

func TestLoadEnvRejectsBadNumber(t *testing.T) {
	t.Setenv("ASSISTANT_BIRTHDAY_DAYS", "a week")
	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestResolveRoot(t *testing.T) {
	assert.Equal(t, "/flag", ResolveRoot(Flags{Root: "/flag"}, Env{Root: "/env"}))
	assert.Equal(t, "/env", ResolveRoot(Flags{}, Env{Root: "/env"}))
	assert.Equal(t, DefaultRoot, ResolveRoot(Flags{}, Env{}))
}

func TestResolvePrecedence(t *testing.T) {
	ws := store.Config{Schema: 1, Backend: "sqlite", BirthdayDays: 14}

	tests := []struct {
		name  string
		flags Flags
		env   Env
		want  Settings
	}{
		{
			name: "workspace config",
			want: Settings{Root: "/ws", Backend: "sqlite", BirthdayDays: 14, LogLevel: "info", LogFile: filepath.Join("/ws", "logs", "assistant.log"), Color: true},
		},
		{
			name: "env over workspace",
			env:  Env{Backend: "file", BirthdayDays: 3, LogLevel: "WARN", LogFile: "/env.log", NoColor: "1"},
			want: Settings{Root: "/ws", Backend: "file", BirthdayDays: 3, LogLevel: "warn", LogFile: "/env.log"},
		},
		{
			name:  "flags over env",
			flags: Flags{Backend: "sqlite", BirthdayDays: 30, Verbose: true, LogFile: "/flag.log"},
			env:   Env{Backend: "file", BirthdayDays: 3, LogLevel: "warn"},
			want:  Settings{Root: "/ws", Backend: "sqlite", BirthdayDays: 30, LogLevel: "debug", LogFile: "/flag.log", Color: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.flags, tc.env, "/ws", ws)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	got, err := Resolve(Flags{}, Env{}, "/ws", store.Config{})
	require.NoError(t, err)
	assert.Equal(t, store.BackendFile, got.Backend)
	assert.Equal(t, store.DefaultBirthdayDays, got.BirthdayDays)
	assert.Equal(t, "info", got.LogLevel)
}

func TestResolveRejectsBadValues(t *testing.T) {
	_, err := Resolve(Flags{Backend: "postgres"}, Env{}, "/ws", store.Config{})
	assert.True(t, errors.Is(err, store.ErrInvalid))

	_, err = Resolve(Flags{BirthdayDays: -1}, Env{}, "/ws", store.Config{})
	assert.True(t, errors.Is(err, store.ErrInvalid))
}
