package actorkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr3s/akka/actorkit"
)

func TestDefaultMailbox_FIFOFromHead(t *testing.T) {
	mb := actorkit.NewDefaultMailbox()
	for i := 0; i < 3; i++ {
		require.NoError(t, mb.Enqueue(actorkit.NewEnvelope(i)))
	}
	assert.Equal(t, 3, mb.Len())
	assert.Equal(t, 0, mb.PollHead().Message)
	assert.Equal(t, 1, mb.PollHead().Message)
	assert.Equal(t, 2, mb.PollHead().Message)
	assert.Nil(t, mb.PollHead())
	assert.True(t, mb.IsEmpty())
}

func TestDefaultMailbox_PollTailReversesArrivalOrder(t *testing.T) {
	mb := actorkit.NewDefaultMailbox()
	for i := 0; i < 3; i++ {
		require.NoError(t, mb.Enqueue(actorkit.NewEnvelope(i)))
	}
	assert.Equal(t, 2, mb.PollTail().Message)
	assert.Equal(t, 1, mb.PollTail().Message)
	assert.Equal(t, 0, mb.PollTail().Message)
	assert.Nil(t, mb.PollTail())
}

func TestDefaultMailbox_HeadAndTailShareState(t *testing.T) {
	mb := actorkit.NewDefaultMailbox()
	require.NoError(t, mb.Enqueue(actorkit.NewEnvelope("a")))
	require.NoError(t, mb.Enqueue(actorkit.NewEnvelope("b")))
	require.NoError(t, mb.Enqueue(actorkit.NewEnvelope("c")))

	assert.Equal(t, "a", mb.PollHead().Message)
	assert.Equal(t, "c", mb.PollTail().Message)
	assert.Equal(t, "b", mb.PollHead().Message)
	assert.True(t, mb.IsEmpty())
}

func TestDefaultMailbox_DisposeRejectsFurtherEnqueue(t *testing.T) {
	mb := actorkit.NewDefaultMailbox()
	mb.Dispose()
	assert.Error(t, mb.Enqueue(actorkit.NewEnvelope("x")))
	assert.Nil(t, mb.PollHead())
	assert.Nil(t, mb.PollTail())
}

