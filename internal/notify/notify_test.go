package notify

import (
	"testing"
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

func testAdapter(t *testing.T) *storage.Adapter {
	t.Helper()
	adapter, err := storage.Open(t.TempDir(), 1<<20)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestAnnounceWritesSentinel(t *testing.T) {
	n := New(testAdapter(t))
	stamp := time.UnixMilli(1757000000000)
	n.now = func() time.Time { return stamp }

	n.Announce("registrations")

	got, ok := n.LastAnnounced("registrations")
	if !ok {
		t.Fatal("sentinel not readable after announce")
	}
	if !got.Equal(stamp) {
		t.Fatalf("sentinel timestamp = %v, want %v", got, stamp)
	}
}

func TestLastAnnouncedMissing(t *testing.T) {
	n := New(testAdapter(t))
	if _, ok := n.LastAnnounced("competitions"); ok {
		t.Fatal("expected no sentinel for never-announced topic")
	}
}

func TestSubscribeReceivesMatchingTopic(t *testing.T) {
	n := New(testAdapter(t))
	ch, cancel := n.Subscribe("galleryPhotos")
	defer cancel()

	n.Announce("registrations")
	n.Announce("galleryPhotos")

	select {
	case update := <-ch:
		if update.Topic != "galleryPhotos" {
			t.Fatalf("topic = %q, want galleryPhotos", update.Topic)
		}
	default:
		t.Fatal("no update delivered for subscribed topic")
	}
	select {
	case update := <-ch:
		t.Fatalf("unexpected second update %q", update.Topic)
	default:
	}
}

func TestSubscribeAllTopics(t *testing.T) {
	n := New(testAdapter(t))
	ch, cancel := n.Subscribe()
	defer cancel()

	n.Announce("contactMessages")

	select {
	case update := <-ch:
		if update.Topic != "contactMessages" {
			t.Fatalf("topic = %q, want contactMessages", update.Topic)
		}
	default:
		t.Fatal("catch-all subscriber missed the announcement")
	}
}

func TestCancelClosesChannel(t *testing.T) {
	n := New(testAdapter(t))
	ch, cancel := n.Subscribe("competitions")
	cancel()
	cancel() // second cancel is a no-op

	if _, open := <-ch; open {
		t.Fatal("channel still open after cancel")
	}

	// An announce after cancel must not panic on the closed channel.
	n.Announce("competitions")
}

func TestSlowSubscriberDoesNotBlockAnnounce(t *testing.T) {
	n := New(testAdapter(t))
	_, cancel := n.Subscribe("registrations")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			n.Announce("registrations")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("announce blocked on a full subscriber channel")
	}
}
