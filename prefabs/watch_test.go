package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSettledChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "platforms.yaml")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("name: test\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-w.Changes:
		if filepath.Base(got.Path) != "platforms.yaml" || got.Kind != ChangeSpec {
			t.Fatalf("unexpected change %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported for %s", target)
	}

	select {
	case got := <-w.Changes:
		t.Fatalf("burst should collapse into one change, got extra %+v", got)
	case <-time.After(3 * Settle):
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"prefabs/platforms.yaml", ChangeSpec, true},
		{"PLATFORMS.YML", ChangeSpec, true},
		{"prefabs/scripts/difficulty.tengo", ChangeScript, true},
		{"README.md", 0, false},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			kind, ok := classify(c.path)
			if ok != c.ok || kind != c.kind {
				t.Fatalf("classify(%q) = %v,%v want %v,%v", c.path, kind, ok, c.kind, c.ok)
			}
		})
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
