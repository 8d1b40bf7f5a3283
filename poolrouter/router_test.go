package poolrouter_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr3s/akka/actorkit"
	"github.com/dr3s/akka/poolrouter"
)

func echoDelegateFactory() func() (actorkit.ActorRef, error) {
	return func() (actorkit.ActorRef, error) {
		a := actorkit.NewLocalActor(reflect.TypeOf(&actorkit.LocalActor{}), func(msg any) (any, error) {
			return msg, nil
		})
		return a, nil
	}
}

func drainOne(t *testing.T, r *poolrouter.Router) {
	t.Helper()
	env := r.Mailbox().PollHead()
	require.NotNil(t, env)
	r.Receive(env)
}

func TestRouter_StatReportsCurrentDelegateCount(t *testing.T) {
	r := poolrouter.New(poolrouter.Config{
		Instance: echoDelegateFactory(),
		Selector: poolrouter.RoundRobin(1, true),
		Capacity: poolrouter.FixedSize(2),
	})

	slot := r.Ask(poolrouter.Stat, nil)
	drainOne(t, r)
	value, err := slot.Result()
	require.NoError(t, err)

	stats := value.(poolrouter.Stats)
	assert.Equal(t, 0, stats.Count())
}

func TestRouter_GrowsToFixedSizeOnFirstMessage(t *testing.T) {
	r := poolrouter.New(poolrouter.Config{
		Instance: echoDelegateFactory(),
		Selector: poolrouter.RoundRobin(1, true),
		Capacity: poolrouter.FixedSize(3),
	})

	r.Send("hello", nil)
	drainOne(t, r)

	assert.Equal(t, 3, r.LastCapacityDelta()) // first step grows by exactly 3
	assert.Len(t, r.Delegates(), 3)
}

func TestRouter_ForwardsAskToSelectedDelegateAndRepliesBack(t *testing.T) {
	r := poolrouter.New(poolrouter.Config{
		Instance: echoDelegateFactory(),
		Selector: poolrouter.RoundRobin(1, true),
		Capacity: poolrouter.FixedSize(1),
	})

	slot := r.Ask("ping", nil)
	drainOne(t, r)

	value, err := waitForSlot(t, slot)
	require.NoError(t, err)
	assert.Equal(t, "ping", value)
}

func waitForSlot(t *testing.T, slot *actorkit.ReplySlot) (any, error) {
	t.Helper()
	select {
	case <-slot.Done():
		return slot.Result()
	case <-time.After(time.Second):
		t.Fatal("reply slot never completed")
		return nil, nil
	}
}

func TestRouter_SupervisionNotificationRemovesDelegate(t *testing.T) {
	r := poolrouter.New(poolrouter.Config{
		Instance: echoDelegateFactory(),
		Selector: poolrouter.RoundRobin(1, true),
		Capacity: poolrouter.FixedSize(3),
	})

	r.Send("prime-the-pool", nil)
	drainOne(t, r)
	require.Len(t, r.Delegates(), 3)

	victim := r.Delegates()[1].UUID()
	r.Send(poolrouter.DelegateTerminated{Victim: victim}, nil)
	drainOne(t, r)

	remaining := r.Delegates()
	assert.Len(t, remaining, 2)
	for _, d := range remaining {
		assert.NotEqual(t, victim, d.UUID())
	}

	slot := r.Ask(poolrouter.Stat, nil)
	drainOne(t, r)
	value, err := slot.Result()
	require.NoError(t, err)
	assert.Equal(t, 2, value.(poolrouter.Stats).Count())
}

func TestRouter_NoDelegatesAvailableFailsAsk(t *testing.T) {
	r := poolrouter.New(poolrouter.Config{
		Instance: func() (actorkit.ActorRef, error) { return nil, assertErr },
		Selector: poolrouter.RoundRobin(1, true),
		Capacity: poolrouter.FixedSize(1),
	}, poolrouter.WithDelegateRetry(1, time.Millisecond))

	slot := r.Ask("ping", nil)
	drainOne(t, r)

	_, err := slot.Result()
	assert.Error(t, err)
}

var assertErr = errNoDelegate{}

type errNoDelegate struct{}

func (errNoDelegate) Error() string { return "delegate factory intentionally fails" }
