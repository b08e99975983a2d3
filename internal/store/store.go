package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
	timeNow     = func() time.Time { return time.Now().UTC() }
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultBirthdayDays = 7
)

// Workspace is the directory holding config.json and the persisted
// address book and notebook.
type Workspace struct {
	Root string
	cfg  Config
}

type Config struct {
	Schema       int    `json:"schema"`
	Backend      string `json:"backend"`       // file|sqlite
	BirthdayDays int    `json:"birthday_days"` // default window for `birthdays`
}

// Open opens a workspace rooted at root. It does not create files until Init is called.
func Open(root string) (*Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("%w: workspace root is required", ErrInvalid)
	}
	ws := &Workspace{Root: expandHome(root)}
	if err := ws.loadOrDefaultConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ws, nil
}

// Init creates the root directory and a default config.json when missing.
func (w *Workspace) Init() error {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return err
	}
	return w.ensureConfig()
}

func (w *Workspace) ensureConfig() error {
	cfgPath := w.configPath()
	if _, err := os.Stat(cfgPath); err == nil {
		return w.loadOrDefaultConfig()
	}
	w.cfg = defaultConfig()
	b, _ := json.MarshalIndent(w.cfg, "", "  ")
	return atomicWriteFile(cfgPath, b, 0o644)
}

func defaultConfig() Config {
	return Config{
		Schema:       1,
		Backend:      BackendFile,
		BirthdayDays: DefaultBirthdayDays,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.Schema == 0 {
		cfg.Schema = 1
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if cfg.BirthdayDays <= 0 {
		cfg.BirthdayDays = DefaultBirthdayDays
	}
	return cfg
}

func (w *Workspace) loadOrDefaultConfig() error {
	b, err := os.ReadFile(w.configPath())
	if err != nil {
		w.cfg = defaultConfig()
		return err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		w.cfg = defaultConfig()
		return fmt.Errorf("%w: config.json: %v", ErrInvalid, err)
	}
	w.cfg = normalizeConfig(cfg)
	return nil
}

func (w *Workspace) Config() Config {
	return w.cfg
}

func (w *Workspace) SaveConfig(cfg Config) error {
	cfg = normalizeConfig(cfg)
	w.cfg = cfg
	b, _ := json.MarshalIndent(cfg, "", "  ")
	return atomicWriteFile(w.configPath(), b, 0o644)
}

func (w *Workspace) configPath() string {
	return filepath.Join(w.Root, "config.json")
}

// OpenBackend returns the persistence backend named by kind, or the one
// configured in config.json when kind is empty.
func (w *Workspace) OpenBackend(kind string) (Backend, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = w.cfg.Backend
	}
	switch kind {
	case "", BackendFile:
		return NewFileBackend(w.Root), nil
	case BackendSQLite:
		return NewSQLiteBackend(filepath.Join(w.Root, "assistant.db"))
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalid, kind)
	}
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}

func dedupeStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func containsString(list []string, v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	for _, s := range list {
		if strings.ToLower(s) == v {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
