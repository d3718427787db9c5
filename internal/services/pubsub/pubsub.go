// Package pubsub fans out preset changes and preview frames to websocket
// clients and other in-process listeners.
//
// Preview frames are addressed to one preview session; preset events go to
// every listener. Delivery never blocks the publisher: a listener whose
// buffer is full misses the message, and the miss is counted.
package pubsub

import (
	"sync"
	"sync/atomic"

	"github.com/lucsky/cuid"
)

// Topic names a stream of messages.
type Topic string

const (
	// TopicPresetUpdated carries palette events for created, updated and
	// deleted presets.
	TopicPresetUpdated Topic = "PRESET_UPDATED"
	// TopicPreviewFrame carries preview frames, addressed by session id.
	TopicPreviewFrame Topic = "PREVIEW_FRAME"
)

// Subscriber receives the messages of one topic on Channel.
type Subscriber struct {
	ID    string
	Topic Topic
	// SessionID restricts delivery to one preview session. Empty receives
	// every session.
	SessionID string
	Channel   chan interface{}

	dropped atomic.Uint64
}

// Dropped returns how many messages missed this subscriber because its
// buffer was full.
func (s *Subscriber) Dropped() uint64 {
	return s.dropped.Load()
}

// PubSub routes messages from publishers to subscribers.
type PubSub struct {
	mu          sync.RWMutex
	subscribers map[Topic][]*Subscriber
}

// New creates a new PubSub instance.
func New() *PubSub {
	return &PubSub{
		subscribers: make(map[Topic][]*Subscriber),
	}
}

// Subscribe registers a subscriber with a buffer of bufferSize messages.
func (ps *PubSub) Subscribe(topic Topic, sessionID string, bufferSize int) *Subscriber {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	sub := &Subscriber{
		ID:        cuid.New(),
		Topic:     topic,
		SessionID: sessionID,
		Channel:   make(chan interface{}, bufferSize),
	}

	ps.subscribers[topic] = append(ps.subscribers[topic], sub)
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Unknown
// subscribers are ignored.
func (ps *PubSub) Unsubscribe(sub *Subscriber) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	subs := ps.subscribers[sub.Topic]
	for i, s := range subs {
		if s.ID == sub.ID {
			close(s.Channel)
			ps.subscribers[sub.Topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers message to subscribers of sessionID and to subscribers
// without a session. An empty sessionID reaches every subscriber.
func (ps *PubSub) Publish(topic Topic, sessionID string, message interface{}) {
	// Holding the read lock while sending keeps Unsubscribe from closing a
	// channel mid-send.
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, sub := range ps.subscribers[topic] {
		if sub.SessionID == "" || sessionID == "" || sub.SessionID == sessionID {
			deliver(sub, message)
		}
	}
}

// PublishAll delivers message to every subscriber of topic.
func (ps *PubSub) PublishAll(topic Topic, message interface{}) {
	ps.Publish(topic, "", message)
}

// SubscriberCount returns the number of subscribers for a topic.
func (ps *PubSub) SubscriberCount(topic Topic) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subscribers[topic])
}

func deliver(sub *Subscriber, message interface{}) {
	select {
	case sub.Channel <- message:
	default:
		sub.dropped.Add(1)
	}
}
