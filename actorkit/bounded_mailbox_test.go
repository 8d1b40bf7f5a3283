package actorkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr3s/akka/actorkit"
)

func TestBoundedMailbox_EnqueueFailsWhenFull(t *testing.T) {
	mb := actorkit.NewBoundedMailbox(2)
	require.NoError(t, mb.Enqueue(actorkit.NewEnvelope(1)))
	require.NoError(t, mb.Enqueue(actorkit.NewEnvelope(2)))
	assert.Error(t, mb.Enqueue(actorkit.NewEnvelope(3)))
	assert.Equal(t, 2, mb.Len())
}

func TestBoundedMailbox_PollTailPreservesRemainingOrder(t *testing.T) {
	mb := actorkit.NewBoundedMailbox(4)
	for i := 0; i < 3; i++ {
		require.NoError(t, mb.Enqueue(actorkit.NewEnvelope(i)))
	}
	assert.Equal(t, 2, mb.PollTail().Message)
	assert.Equal(t, 0, mb.PollHead().Message)
	assert.Equal(t, 1, mb.PollHead().Message)
	assert.True(t, mb.IsEmpty())
}

func TestBoundedMailbox_DisposeStopsFurtherUse(t *testing.T) {
	mb := actorkit.NewBoundedMailbox(1)
	require.NoError(t, mb.Enqueue(actorkit.NewEnvelope("x")))
	mb.Dispose()
	assert.Equal(t, 0, mb.Len())
}
