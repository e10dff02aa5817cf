// Package scriptfile persists recorded gesture sequences as JSON. The
// format keeps each command's captured interval verbatim; interval clamping
// belongs to replay, never to storage.
package scriptfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"touchrec/internal/core/gesture"
)

const formatVersion = 1

type document struct {
	Version    int               `json:"version"`
	RecordedAt time.Time         `json:"recorded_at"`
	Commands   []gesture.Command `json:"commands"`
}

// Save writes the sequence atomically (tmp file + rename) so an interrupted
// write never leaves a truncated script behind.
func Save(path string, commands []gesture.Command) error {
	doc := document{
		Version:    formatVersion,
		RecordedAt: time.Now(),
		Commands:   commands,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create script dir: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist script: %w", err)
	}
	return nil
}

// Load reads a sequence back, validating version and command kinds.
func Load(path string) ([]gesture.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("unsupported script version %d in %s", doc.Version, path)
	}
	for i, cmd := range doc.Commands {
		switch cmd.Kind {
		case gesture.KindTap, gesture.KindSwipe:
		default:
			return nil, fmt.Errorf("command %d in %s has unknown kind %q", i+1, path, cmd.Kind)
		}
	}
	return doc.Commands, nil
}
