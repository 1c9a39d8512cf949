package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Files holds the paths of a generated up/down migration pair.
type Files struct {
	Version  string
	UpPath   string
	DownPath string
}

// Create writes an empty up/down SQL pair named
// <timestamp>_<sanitized name>.{up,down}.sql with a header comment block.
func Create(dir, name, description string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := filepath.Join(dir, version+"_"+sanitize(name))

	f := &Files{
		Version:  version,
		UpPath:   base + ".up.sql",
		DownPath: base + ".down.sql",
	}

	up := header(name, description, now) + "-- Write your UP migration SQL here\n\n"
	if err := os.WriteFile(f.UpPath, []byte(up), 0o644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}

	down := header(name+" (Rollback)", "Rollback for "+description, now) + "-- Write your DOWN migration SQL here\n\n"
	if err := os.WriteFile(f.DownPath, []byte(down), 0o644); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return f, nil
}

// List returns the base names of the migration pairs in dir, in version
// order. A missing directory lists as empty.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}

func header(name, description string, now time.Time) string {
	return fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n",
		name, now.Format(time.RFC3339), description)
}

// sanitize lowercases the name and collapses separator runs to single
// underscores, dropping anything that is not [a-z0-9].
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
