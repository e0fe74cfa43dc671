package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubPublish(t *testing.T) {
	hub := NewHub[int]()

	var got []int
	hub.Subscribe(func(v int) { got = append(got, v) })

	hub.Publish(1)
	hub.Publish(2)

	assert.Equal(t, []int{1, 2}, got)
}

func TestHubMultipleSubscribers(t *testing.T) {
	hub := NewHub[string]()

	var a, b []string
	hub.Subscribe(func(v string) { a = append(a, v) })
	hub.Subscribe(func(v string) { b = append(b, v) })

	hub.Publish("x")

	assert.Equal(t, []string{"x"}, a)
	assert.Equal(t, []string{"x"}, b)
	assert.Equal(t, 2, hub.Len())
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub[int]()

	var got []int
	unsubscribe := hub.Subscribe(func(v int) { got = append(got, v) })

	hub.Publish(1)
	unsubscribe()
	hub.Publish(2)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 0, hub.Len())
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub[int]()

	first := hub.Subscribe(func(int) {})
	second := hub.Subscribe(func(int) {})

	first()
	first() // second call must not touch the other subscription
	assert.Equal(t, 1, hub.Len())

	second()
	assert.Equal(t, 0, hub.Len())
}

func TestHubUnsubscribeDuringPublish(t *testing.T) {
	hub := NewHub[int]()

	var unsubscribe func()
	calls := 0
	unsubscribe = hub.Subscribe(func(int) {
		calls++
		unsubscribe()
	})

	hub.Publish(1)
	hub.Publish(2)

	assert.Equal(t, 1, calls)
}
