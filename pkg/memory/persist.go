package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ensureDir creates the storage root (and parents) if absent. Idempotent.
func ensureDir(root string) error {
	if err := os.MkdirAll(root, 0750); err != nil {
		return fmt.Errorf("memory: init directory %s: %w", root, err)
	}
	return nil
}

// loadCollection reads root/name into out. A missing file leaves out
// untouched and returns false. Malformed content is logged and treated the
// same way: the caller keeps its empty collection and the process continues.
func loadCollection(root, name string, out interface{}) bool {
	path := filepath.Join(root, name)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	if err != nil {
		memLog.Errorf("failed to read %s: %v", path, err)
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		memLog.Errorf("skipping malformed collection %s: %v", path, err)
		return false
	}
	return true
}

// saveCollection serializes v as 2-space-indented JSON and overwrites
// root/name atomically via a temp file and rename. Failures are logged and
// returned; the in-memory collection stays authoritative either way.
func saveCollection(root, name string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		memLog.Errorf("failed to encode %s: %v", name, err)
		return fmt.Errorf("memory: encode %s: %w", name, err)
	}

	path := filepath.Join(root, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0600); err != nil {
		memLog.Errorf("failed to write %s: %v", tmp, err)
		return fmt.Errorf("memory: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		memLog.Errorf("failed to replace %s: %v", path, err)
		return fmt.Errorf("memory: atomic rename %s: %w", path, err)
	}
	return nil
}
