package actorkit_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr3s/akka/actorkit"
)

func echoActor() *actorkit.LocalActor {
	return actorkit.NewLocalActor(reflect.TypeOf(&actorkit.LocalActor{}), func(msg any) (any, error) {
		return msg, nil
	})
}

func TestLocalActor_SendEnqueuesWithoutReplySlot(t *testing.T) {
	a := echoActor()
	a.Send("hello", nil)
	require.Equal(t, 1, a.MailboxSize())

	env := a.Mailbox().PollHead()
	require.NotNil(t, env)
	assert.Equal(t, "hello", env.Message)
	assert.Nil(t, env.ReplySlot)
}

func TestLocalActor_AskCompletesViaReceive(t *testing.T) {
	a := echoActor()
	slot := a.Ask("ping", nil)
	assert.True(t, a.HasPendingReply())

	env := a.Mailbox().PollHead()
	require.NotNil(t, env)
	a.Receive(env)

	value, err := slot.Result()
	require.NoError(t, err)
	assert.Equal(t, "ping", value)
	assert.False(t, a.HasPendingReply())
}

func TestLocalActor_ReceiveErrorFailsReplySlot(t *testing.T) {
	boom := errors.New("boom")
	a := actorkit.NewLocalActor(reflect.TypeOf(&actorkit.LocalActor{}), func(msg any) (any, error) {
		return nil, boom
	})
	slot := a.Ask("whatever", nil)
	a.Receive(a.Mailbox().PollHead())

	_, err := slot.Result()
	assert.ErrorIs(t, err, boom)
}

func TestLocalActor_ReceiveErrorWithNoReplySlotCallsOnError(t *testing.T) {
	boom := errors.New("boom")
	a := actorkit.NewLocalActor(reflect.TypeOf(&actorkit.LocalActor{}), func(msg any) (any, error) {
		return nil, boom
	})
	var reported error
	a.OnError = func(err error) { reported = err }

	a.Send("whatever", nil)
	a.Receive(a.Mailbox().PollHead())

	assert.ErrorIs(t, reported, boom)
}

func TestLocalActor_TryLockIsNonReentrant(t *testing.T) {
	a := echoActor()
	require.True(t, a.TryLock())
	assert.False(t, a.TryLock())
	a.Unlock()
	assert.True(t, a.TryLock())
}

func TestLocalActor_UUIDIsStable(t *testing.T) {
	a := echoActor()
	first := a.UUID()
	assert.Equal(t, first, a.UUID())
	assert.NotEmpty(t, string(first))
}

func TestReplySlot_OnlyFirstCompletionWins(t *testing.T) {
	_, slot := actorkit.NewAskEnvelope("m", nil)
	slot.CompleteWithValue(1)
	slot.CompleteWithValue(2)
	slot.CompleteWithError(errors.New("ignored"))

	value, err := slot.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}
