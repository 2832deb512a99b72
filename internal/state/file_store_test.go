package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/listwiz/internal/draft"
	"github.com/mark3labs/listwiz/internal/draft/drafttest"
)

func TestFileStoreContract(t *testing.T) {
	drafttest.RunStoreContract(t, NewFileStore(t.TempDir()))
}

func TestPutCreatesDirectory(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "subdir", "data")
	store := NewFileStore(dataDir)

	if err := store.Put(context.Background(), "listing-draft", []byte("{}")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	path := filepath.Join(dataDir, "listing-draft.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("draft file was not created")
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the draft file, temp files left behind: %v", entries)
	}
}

func TestGetMissingDirectory(t *testing.T) {
	store := NewFileStore("/tmp/nonexistent-listwiz-dir-xyz123")

	_, err := store.Get(context.Background(), "listing-draft")
	if err != draft.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsPathKeys(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape", `a\b`, "nested/key"} {
		if err := store.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("expected Put(%q) to fail", key)
		}
	}
}

func TestCorruptFileSurfacesToPersister(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewFileStore(tmpDir)

	path := filepath.Join(tmpDir, "listing-draft.json")
	if err := os.WriteFile(path, []byte("invalid json {{{"), 0644); err != nil {
		t.Fatalf("failed to write invalid JSON: %v", err)
	}

	p, err := draft.NewPersister(draft.Options{Store: store, Key: "listing-draft"})
	if err != nil {
		t.Fatalf("NewPersister failed: %v", err)
	}
	defer p.Close()

	if _, ok := p.Load(context.Background()); ok {
		t.Error("corrupt file must not restore")
	}
	if p.HasDraft() {
		t.Error("corrupt file must not count as a draft")
	}
}
