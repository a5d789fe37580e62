package stacktrace

import (
	"strings"
	"testing"
)

func captureHere() []string {
	return Capture(0)
}

func explode() {
	panic("boom")
}

func TestCapture_StartsAtCaller(t *testing.T) {
	got := captureHere()

	if len(got) == 0 {
		t.Fatal("expected module frames")
	}
	if !strings.HasPrefix(got[0], "internal/pkg/stacktrace/stacktrace_test.go:") {
		t.Fatalf("first frame = %q, want the calling helper", got[0])
	}
}

func TestCapture_OnlyModuleFrames(t *testing.T) {
	for _, p := range captureHere() {
		if !strings.HasPrefix(p, "internal/") {
			t.Fatalf("unexpected frame %q", p)
		}
	}
}

func TestCapture_InsideRecover(t *testing.T) {
	var paths []string

	func() {
		defer func() {
			if recover() != nil {
				paths = Capture(0)
			}
		}()
		explode()
	}()

	if len(paths) < 2 {
		t.Fatalf("expected the panicking frames, got %v", paths)
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, "internal/pkg/stacktrace/stacktrace_test.go:") {
			t.Fatalf("unexpected frame %q", p)
		}
	}
}
