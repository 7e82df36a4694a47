package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenCreatesNestedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep", "nested", "memory")

	if _, err := Open(root); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("Expected root directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected root to be a directory")
	}
}

func TestOpenToleratesMalformedFiles(t *testing.T) {
	root := t.TempDir()

	if err := os.WriteFile(filepath.Join(root, factsFile), []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, proceduresFile), []byte("null"), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	store, err := Open(root)
	if err != nil {
		t.Fatalf("Open should tolerate malformed files, got: %v", err)
	}
	if got := store.Facts(); len(got) != 0 {
		t.Errorf("Expected empty facts for malformed file, got %v", got)
	}
	if got := store.Procedures(); got == nil || len(got) != 0 {
		t.Errorf("Expected empty procedures map for null file, got %v", got)
	}

	// The store must stay writable after recovering from bad files.
	store.AddFact("Recovered", "fact")
	if got := store.Facts(); len(got) != 1 {
		t.Errorf("Expected 1 fact after recovery, got %d", len(got))
	}
}

func TestSaveCollectionFormat(t *testing.T) {
	root := t.TempDir()

	store, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.AddFact("The sky is blue", "fact")

	b, err := os.ReadFile(filepath.Join(root, factsFile))
	if err != nil {
		t.Fatalf("Expected facts file on disk: %v", err)
	}

	var facts []Fact
	if err := json.Unmarshal(b, &facts); err != nil {
		t.Fatalf("Facts file is not valid JSON: %v", err)
	}
	if len(facts) != 1 || facts[0].Text != "The sky is blue" {
		t.Errorf("Unexpected file content: %+v", facts)
	}

	// Files are written human-readable with 2-space indentation.
	if !strings.Contains(string(b), "\n  {") {
		t.Errorf("Expected 2-space indented JSON, got:\n%s", b)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()

	store, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.AddFact("one", "fact")
	store.AddProcedure("p", []string{"s"}, "d")
	store.AddInteraction("u", "a", nil)
	store.AddShortTerm("note", 0.5)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 4 {
		t.Errorf("Expected exactly 4 collection files, got %d", len(entries))
	}
}

func TestProceduresFileKeyedByName(t *testing.T) {
	root := t.TempDir()

	store, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.AddProcedure("greeting", []string{"Say hello"}, "Say hello to the user")

	b, err := os.ReadFile(filepath.Join(root, proceduresFile))
	if err != nil {
		t.Fatalf("Expected procedures file on disk: %v", err)
	}

	var onDisk map[string]Procedure
	if err := json.Unmarshal(b, &onDisk); err != nil {
		t.Fatalf("Procedures file is not a JSON object: %v", err)
	}
	if _, ok := onDisk["greeting"]; !ok {
		t.Errorf("Expected 'greeting' key in procedures file, got %v", onDisk)
	}
}
