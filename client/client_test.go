package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendDropsWhenFull(t *testing.T) {
	c := New(nil, 2)
	assert.NotEmpty(t, c.ID)

	assert.True(t, c.Send([]byte("a")))
	assert.True(t, c.Send([]byte("b")))
	assert.False(t, c.Send([]byte("c")))
	assert.Len(t, c.SendQueue, 2)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(nil, 1)
	c.Close()
	c.Close()
	assert.False(t, c.Send([]byte("late")), "sending after close is dropped")

	_, open := <-c.SendQueue
	assert.False(t, open)
}
