package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinelookup/internal/services"
)

func TestTaskWaitReturnsValue(t *testing.T) {
	task := Go(context.Background(), "tok", func(context.Context) (int, error) { return 42, nil })
	value, err := task.Wait(context.Background())
	if err != nil || value != 42 {
		t.Fatalf("Wait = %d, %v", value, err)
	}
	select {
	case <-task.Done():
	default:
		t.Fatal("Done must be closed after Wait returns the value")
	}
	if task.Token() != "tok" {
		t.Fatalf("token = %q", task.Token())
	}
}

func TestTaskWaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	task := Go(context.Background(), "tok", func(context.Context) (string, error) {
		<-release
		return "late", nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := task.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTaskRecoversPanic(t *testing.T) {
	task := Go(context.Background(), "tok", func(context.Context) (int, error) { panic("boom") })
	if _, err := task.Wait(context.Background()); err == nil {
		t.Fatal("expected panic converted to error")
	}
}

func TestSoftTimeoutMarksArtworkUnavailable(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	_, err := withSoftTimeout(context.Background(), 20*time.Millisecond, "poster", func(context.Context) (string, error) {
		<-release
		return "/tmp/poster.jpg", nil
	})
	if !errors.Is(err, ErrSoftTimeout) || !errors.Is(err, services.ErrArtworkUnavailable) {
		t.Fatalf("expected soft timeout artwork error, got %v", err)
	}

	value, err := withSoftTimeout(context.Background(), time.Second, "poster", func(context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || value != "ok" {
		t.Fatalf("fast fetch = %q, %v", value, err)
	}
}

func TestSoftTimeoutWhenCallbackHonoursDeadline(t *testing.T) {
	for i := 0; i < 20; i++ {
		_, err := withSoftTimeout(context.Background(), 5*time.Millisecond, "backdrop", func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
		if !errors.Is(err, ErrSoftTimeout) {
			t.Fatalf("run %d: expected soft timeout, got %v", i, err)
		}
	}
}

func TestTrackerLastRequestWins(t *testing.T) {
	tracker := NewTracker()
	firstCtx, first := tracker.Begin(context.Background())
	_, second := tracker.Begin(context.Background())

	if first == second {
		t.Fatal("tokens must be unique")
	}
	if tracker.Current(first) {
		t.Fatal("first token should be stale")
	}
	if !tracker.Current(second) {
		t.Fatal("second token should be current")
	}
	select {
	case <-firstCtx.Done():
	default:
		t.Fatal("superseded request context should be cancelled")
	}
	if id, ok := services.RequestIDFromContext(firstCtx); !ok || id != first {
		t.Fatalf("expected token on context, got %q", id)
	}
	if tracker.Current("") {
		t.Fatal("empty token is never current")
	}
}
