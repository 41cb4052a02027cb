package notify

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func note(body string) Notification {
	return Notification{Title: "Family Calendar", Body: body, At: time.Now()}
}

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	if err := hub.Notify(context.Background(), note("hello")); err != nil {
		t.Fatalf("notify returned error: %v", err)
	}

	select {
	case n := <-ch:
		if n.Body != "hello" {
			t.Fatalf("unexpected notification %+v", n)
		}
	default:
		t.Fatalf("expected a delivered notification")
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe()
	unsubscribe()

	_ = hub.Notify(context.Background(), note("late"))

	select {
	case n := <-ch:
		t.Fatalf("unsubscribed channel received %+v", n)
	default:
	}
}

func TestHubRecentKeepsBoundedHistory(t *testing.T) {
	hub := NewHub()
	for i := 0; i < recentLimit+10; i++ {
		_ = hub.Notify(context.Background(), note(fmt.Sprintf("n%d", i)))
	}

	recent := hub.Recent()
	if len(recent) != recentLimit {
		t.Fatalf("expected history capped at %d, got %d", recentLimit, len(recent))
	}
	if recent[len(recent)-1].Body != fmt.Sprintf("n%d", recentLimit+9) {
		t.Fatalf("expected newest notification last, got %+v", recent[len(recent)-1])
	}
}

func TestHubReplayAndLiveFeedAreContiguous(t *testing.T) {
	hub := NewHub()
	_ = hub.Notify(context.Background(), note("first"))

	// Registration and history come from one lock acquisition, so a
	// notification lands in exactly one of the two: the replay or the
	// live channel, never neither and never both.
	replay, ch, unsubscribe := hub.SubscribeWithReplay()
	defer unsubscribe()

	if len(replay) != 1 || replay[0].Body != "first" {
		t.Fatalf("unexpected replay %+v", replay)
	}

	_ = hub.Notify(context.Background(), note("second"))
	select {
	case n := <-ch:
		if n.Body != "second" {
			t.Fatalf("unexpected live notification %+v", n)
		}
	default:
		t.Fatalf("expected live delivery after replay")
	}

	select {
	case n := <-ch:
		t.Fatalf("replayed notification delivered twice: %+v", n)
	default:
	}
}

func TestHubSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	_, unsubscribe := hub.Subscribe() // never drained
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = hub.Notify(context.Background(), note("burst"))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notify blocked on a slow subscriber")
	}
}
