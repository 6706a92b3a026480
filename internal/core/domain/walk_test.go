package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/cargoc/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestWalk_EnterLeave(t *testing.T) {
	w := domain.NewWalk()

	if err := w.Enter("/app"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Enter("/lib"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", w.Depth())
	}

	w.Leave()
	if err := w.Enter("/lib"); err != nil {
		t.Errorf("re-entering a project after leaving it should succeed, got %v", err)
	}
}

func TestWalk_Cycle(t *testing.T) {
	w := domain.NewWalk()
	for _, dir := range []string{"/app", "/a", "/b"} {
		if err := w.Enter(dir); err != nil {
			t.Fatalf("failed to enter %s: %v", dir, err)
		}
	}

	err := w.Enter("/a")
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrDependencyCycle) {
		t.Errorf("expected ErrDependencyCycle, got %v", err)
	}

	// Verify error is of correct type
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}

	meta := zErr.Metadata()
	if cycle, ok := meta["cycle"].(string); !ok || cycle != "/a -> /b -> /a" {
		t.Errorf("expected metadata cycle=/a -> /b -> /a, got %v", meta["cycle"])
	}
}

func TestWalk_LeaveEmpty(t *testing.T) {
	w := domain.NewWalk()
	w.Leave()
	if w.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", w.Depth())
	}
}
