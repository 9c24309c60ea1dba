package client

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"vehicle-catalogue/core/motable"
	"vehicle-catalogue/core/warn"
)

// Resolver turns a client string reference into display text.
type Resolver interface {
	Resolve(ref string) string
}

// Localizer resolves "#file:key" references through the .mo tables in Dir.
// References that cannot be resolved are returned unchanged.
type Localizer struct {
	Dir string

	warnings *warn.List
	mu       sync.Mutex
	tables   map[string]map[string]string
}

// NewLocalizer creates a localizer over dir. Unreadable tables are reported
// to w once per file.
func NewLocalizer(dir string, w *warn.List) *Localizer {
	return &Localizer{
		Dir:      dir,
		warnings: w,
		tables:   make(map[string]map[string]string),
	}
}

// Resolve implements Resolver.
func (l *Localizer) Resolve(ref string) string {
	file, key, ok := splitRef(ref)
	if !ok {
		return ref
	}
	if value, found := l.table(file)[key]; found {
		return value
	}
	return ref
}

func (l *Localizer) table(file string) map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := strings.ToLower(file)
	if t, ok := l.tables[name]; ok {
		return t
	}

	path := filepath.Join(l.Dir, file+".mo")
	t, err := motable.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.warnings.Addf("Could not read the string table %q: %v", path, err)
		}
		t = nil
	}
	l.tables[name] = t
	return t
}

func splitRef(ref string) (file, key string, ok bool) {
	if !strings.HasPrefix(ref, "#") {
		return "", "", false
	}
	parts := strings.Split(ref[1:], ":")
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
