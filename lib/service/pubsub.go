package service

import (
	"sync"

	"github.com/labstack/gommon/random"
)

// subscriberBuffer must absorb a short burst of mutations while the
// websocket writer drains; beyond that the subscriber is dropped behind.
const subscriberBuffer = 32

// Message is the wire format pushed to every live-update subscriber.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Pubsub owns the transient set of live-update subscribers. Publish
// never blocks on and never fails because of an individual subscriber.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]chan Message
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]chan Message)
	return ps
}

func (ps *Pubsub) Subscribe() (subId string, ch chan Message) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	subId = random.String(16, alphaNumBytes)
	ch = make(chan Message, subscriberBuffer)
	ps.subs[subId] = ch
	return subId, ch
}

func (ps *Pubsub) Unsubscribe(subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch, ok := ps.subs[subId]
	if !ok {
		return
	}
	close(ch)
	delete(ps.subs, subId)
}

// Publish fans a message out to every current subscriber. A subscriber
// whose buffer is full has fallen behind and misses the message; the
// remaining subscribers are unaffected.
func (ps *Pubsub) Publish(eventType string, data interface{}) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	msg := Message{Type: eventType, Data: data}
	for _, ch := range ps.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount reports the current number of live subscribers.
func (ps *Pubsub) SubscriberCount() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subs)
}
