package orchestration

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPanicSafeNamedWorker(t *testing.T) {
	errBoom := errors.New("boom")

	if err := panicSafeNamedWorker("ok", func(context.Context) error { return nil })(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err := panicSafeNamedWorker("failing", func(context.Context) error { return errBoom })(context.Background())
	if !errors.Is(err, errBoom) || !strings.Contains(err.Error(), "failing worker failed") {
		t.Fatalf("expected wrapped worker error, got %v", err)
	}

	err = panicSafeNamedWorker("panicking", func(context.Context) error { panic("kaboom") })(context.Background())
	if err == nil || !strings.Contains(err.Error(), "panicking worker panicked: kaboom") {
		t.Fatalf("expected recovered panic, got %v", err)
	}
}
