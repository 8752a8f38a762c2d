// Package prefs handles skillshare user preferences persistence.
// Preferences are stored in ~/.config/skillshare/prefs.toml and hold the
// display name and the UI theme.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	UserName string `toml:"user_name"`
	Theme    string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/skillshare/prefs.toml"

	// DefaultTheme is used when no theme is stored.
	DefaultTheme = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults when
// the file is missing or unreadable. UserName stays blank when unset; the
// caller picks the fallback name.
func Load(path string) Prefs {
	prefs := Prefs{Theme: DefaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		return prefs // missing or unreadable
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: DefaultTheme}
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = DefaultTheme
	}

	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// File is the prefs file seen as key/value storage. Each update reloads
// the file so concurrent writers of different keys do not clobber each
// other within one process.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a File for path; empty uses DefaultPath.
func NewFile(path string) *File {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return &File{path: path}
}

// Path returns the unresolved path.
func (f *File) Path() string {
	return f.path
}

// LoadName returns the persisted display name, or "" when none is stored.
func (f *File) LoadName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Load(f.path).UserName
}

// SaveName persists the display name, keeping the other keys.
func (f *File) SaveName(name string) error {
	return f.update(func(p *Prefs) { p.UserName = name })
}

// LoadTheme returns the persisted theme name.
func (f *File) LoadTheme() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Load(f.path).Theme
}

// SaveTheme persists the theme name, keeping the other keys.
func (f *File) SaveTheme(theme string) error {
	return f.update(func(p *Prefs) { p.Theme = theme })
}

func (f *File) update(apply func(p *Prefs)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := Load(f.path)
	apply(&p)
	return Save(f.path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
