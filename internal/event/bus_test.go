package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishSubscribe(t *testing.T) {
	b := NewBus()
	var got []Event
	unsubscribe := b.Subscribe(Click, func(e Event) { got = append(got, e) })

	n := b.Publish(Event{Name: Click, X: 3, Y: 4})
	assert.Equal(t, 1, n)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 3, got[0].X)
		assert.False(t, got[0].Time.IsZero())
	}

	assert.Equal(t, 0, b.Publish(Event{Name: FileOpen}))

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, b.Publish(Event{Name: Click}))
	assert.Equal(t, 0, b.Subscribers(Click))
}

func TestHandlerMayUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	calls := 0
	var unsubscribe func()
	unsubscribe = b.Subscribe(Click, func(Event) {
		calls++
		unsubscribe()
	})

	b.Publish(Event{Name: Click})
	b.Publish(Event{Name: Click})
	assert.Equal(t, 1, calls)
}
