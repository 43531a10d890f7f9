package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversContentEvents(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	// a filtered extension first, then real content
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "shapes.yaml")
	if err := os.WriteFile(target, []byte("shapes: {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Ext(name) != ".yaml" {
				t.Fatalf("got event for filtered file %q", name)
			}
			return
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatal("no event for shapes.yaml within 2s")
		}
	}
}

func TestWatcherCloseDuringEvents(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	// hammer writes while closing so a final event can race shutdown
	stop := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			_ = os.WriteFile(filepath.Join(dir, "spawn.tengo"), []byte("__points = []"), 0o644)
		}
	}()

	time.Sleep(20 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	close(stop)
	<-writerDone

	// both channels drain and close; a send racing Close must not panic
	for range w.Events {
	}
	for range w.Errors {
	}

	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
