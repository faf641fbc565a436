package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	ps := NewPubsub()
	_, ch1 := ps.Subscribe()
	_, ch2 := ps.Subscribe()

	ps.Publish(EventTypeCreated, map[string]int64{"id": 1})

	for _, ch := range []chan Message{ch1, ch2} {
		msg := <-ch
		assert.Equal(t, EventTypeCreated, msg.Type)
	}
}

func TestUnsubscribedChannelClosedAndRemoved(t *testing.T) {
	ps := NewPubsub()
	subId, ch := ps.Subscribe()
	assert.Equal(t, 1, ps.SubscriberCount())

	ps.Unsubscribe(subId)
	assert.Equal(t, 0, ps.SubscriberCount())
	_, open := <-ch
	assert.False(t, open)

	// unsubscribing twice is a no-op
	ps.Unsubscribe(subId)
}

func TestSlowSubscriberDoesNotBlockOthers(t *testing.T) {
	ps := NewPubsub()
	_, slow := ps.Subscribe()
	_, healthy := ps.Subscribe()

	// overflow the slow subscriber's buffer
	for i := 0; i < subscriberBuffer+10; i++ {
		ps.Publish(EventTypeUpdated, i)
	}

	assert.Len(t, slow, subscriberBuffer)
	assert.Len(t, healthy, subscriberBuffer)
}

func TestConcurrentSubscribePublishUnsubscribe(t *testing.T) {
	ps := NewPubsub()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			subId, ch := ps.Subscribe()
			select {
			case <-ch:
			default:
			}
			ps.Unsubscribe(subId)
		}()
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ps.Publish(EventTypeCreated, fmt.Sprintf("%d-%d", n, j))
			}
		}(i)
	}
	wg.Wait()
}
