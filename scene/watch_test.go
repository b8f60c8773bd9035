package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const oneSphere = `
[[shape]]
name = "a"
kind = "sphere"
radius = 1.0
`

const twoSpheres = oneSphere + `
[[shape]]
name = "b"
kind = "sphere"
position = [1.0, 0.0, 0.0]
radius = 1.0
`

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(oneSphere), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scenes := make(chan *Scene, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, quietLogger(), func(s *Scene) { scenes <- s })
	}()

	select {
	case s := <-scenes:
		if len(s.Shapes) != 1 {
			t.Fatalf("Expected the initial scene with 1 shape, got %d", len(s.Shapes))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the initial scene")
	}

	if err := os.WriteFile(path, []byte(twoSpheres), 0o644); err != nil {
		t.Fatal(err)
	}

	// A write may be seen in several events, the last one holds the full file
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case s := <-scenes:
			reloaded = len(s.Shapes) == 2
		case <-timeout:
			t.Fatal("Timed out waiting for the reloaded scene")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing.toml"), quietLogger(), func(*Scene) {})
	if err == nil {
		t.Error("Expected an error for a missing scene")
	}
}
