package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_SameScope_EnforcesMinDelay(t *testing.T) {
	pacer := NewPacer(100 * time.Millisecond)
	ctx := context.Background()

	// First call should return immediately.
	if err := pacer.Wait(ctx, "batch"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := pacer.Wait(ctx, "batch"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentScopes_NoCrossBlocking(t *testing.T) {
	pacer := NewPacer(200 * time.Millisecond)
	ctx := context.Background()

	if err := pacer.Wait(ctx, "batch"); err != nil {
		t.Fatalf("batch wait: %v", err)
	}

	// Immediately call for a different scope; should NOT block.
	start := time.Now()
	if err := pacer.Wait(ctx, "source"); err != nil {
		t.Fatalf("source wait: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("expected source wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	pacer := NewPacer(5 * time.Second) // long delay
	ctx := context.Background()

	// First call to seed the last-call time.
	if err := pacer.Wait(ctx, "batch"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	// Cancel the context before the wait completes.
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := pacer.Wait(ctx, "batch"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

func TestReset_ClearsScope(t *testing.T) {
	pacer := NewPacer(time.Second)
	ctx := context.Background()

	if err := pacer.Wait(ctx, "batch"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	pacer.Reset("batch")

	start := time.Now()
	if err := pacer.Wait(ctx, "batch"); err != nil {
		t.Fatalf("wait after reset: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected wait after reset to be near-instant, got %v", elapsed)
	}
}
