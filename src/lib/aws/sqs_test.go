package aws

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchRemovesMessageOnSuccess(t *testing.T) {
	handled := 0
	removed := 0
	c := NewSQSConsumer("TestQueue", func(body string) error {
		handled++
		assert.Equal(t, "payload", body)
		return nil
	})

	c.dispatch("payload", func() { removed++ })

	assert.Equal(t, 1, handled)
	assert.Equal(t, 1, removed)
}

// A failed handler must leave the message on the queue so the visibility
// timeout redelivers it and the redrive policy can eventually dead-letter it.
func TestDispatchKeepsMessageOnFailure(t *testing.T) {
	removed := 0
	c := NewSQSConsumer("TestQueue", func(body string) error {
		return errors.New("transient failure")
	})

	c.dispatch("payload", func() { removed++ })

	assert.Equal(t, 0, removed)
}
