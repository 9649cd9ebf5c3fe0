// Package notify is the cross-view change signal. A mutation announces
// its topic; the announcement persists a sentinel timestamp key and
// fans out to whoever is subscribed in-process. Delivery is
// best-effort and at most once. The store itself is the source of
// truth, and a view that misses a signal simply reloads fresh data the
// next time it opens.
package notify

import (
	"strconv"
	"sync"
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Update names a changed topic and when the change was announced.
type Update struct {
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

type subscriber struct {
	topics map[string]bool
	ch     chan Update
}

// Notifier writes sentinel keys and fans announcements out to
// subscribers. Subscriber channels are never blocked on: a consumer
// that falls behind loses signals, not liveness.
type Notifier struct {
	adapter *storage.Adapter
	now     func() time.Time

	mu   sync.Mutex
	subs map[*subscriber]bool
}

func New(adapter *storage.Adapter) *Notifier {
	return &Notifier{
		adapter: adapter,
		now:     time.Now,
		subs:    map[*subscriber]bool{},
	}
}

// SentinelKey is the storage key carrying a topic's last-change
// timestamp.
func SentinelKey(topic string) string {
	return topic + "Updated"
}

// Announce records that topic changed: the sentinel key gets the
// current timestamp (milliseconds, as a string, matching what views
// already compare against) and in-process subscribers are signaled.
// Sentinel write failures are deliberately ignored: a lost signal
// must never fail the mutation that triggered it.
func (n *Notifier) Announce(topic string) {
	now := n.now()
	_ = n.adapter.Write(SentinelKey(topic), strconv.FormatInt(now.UnixMilli(), 10))

	update := Update{Topic: topic, Timestamp: now}
	n.mu.Lock()
	defer n.mu.Unlock()
	for sub := range n.subs {
		if len(sub.topics) > 0 && !sub.topics[topic] {
			continue
		}
		select {
		case sub.ch <- update:
		default:
		}
	}
}

// Subscribe registers interest in the given topics (all topics when
// none are named) and returns the update channel plus a cancel
// function. Cancel closes the channel.
func (n *Notifier) Subscribe(topics ...string) (<-chan Update, func()) {
	sub := &subscriber{
		topics: make(map[string]bool, len(topics)),
		ch:     make(chan Update, 16),
	}
	for _, topic := range topics {
		sub.topics[topic] = true
	}

	n.mu.Lock()
	n.subs[sub] = true
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.subs[sub] {
			delete(n.subs, sub)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// LastAnnounced reads a topic's sentinel. The zero time and false mean
// the topic was never announced (or the sentinel was unreadable, which
// views treat the same way).
func (n *Notifier) LastAnnounced(topic string) (time.Time, bool) {
	var raw string
	if err := n.adapter.Read(SentinelKey(topic), &raw); err != nil {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}
