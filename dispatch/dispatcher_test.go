package dispatch_test

import (
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dr3s/akka/actorkit"
	"github.com/dr3s/akka/dispatch"
)

type countingActor struct {
	*actorkit.LocalActor
	processed atomic.Int64
}

func newCountingActor(sleep time.Duration) *countingActor {
	c := &countingActor{}
	c.LocalActor = actorkit.NewLocalActor(reflect.TypeOf(c), func(msg any) (any, error) {
		if sleep > 0 {
			time.Sleep(sleep)
		}
		c.processed.Add(1)
		return nil, nil
	})
	return c
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func TestDispatcher_DonationUnderContention(t *testing.T) {
	d := dispatch.New(dispatch.WithNumShards(4))
	d.Start()
	defer d.Shutdown()

	a := newCountingActor(200 * time.Millisecond)
	b := newCountingActor(0)
	require.NoError(t, d.Register(a))
	require.NoError(t, d.Register(b))

	start := time.Now()
	for i := 0; i < 10; i++ {
		a.Send(i, nil)
		require.NoError(t, d.Dispatch(a))
	}

	waitUntil(t, 600*time.Millisecond, func() bool {
		return a.processed.Load()+b.processed.Load() == 10
	})
	elapsed := time.Since(start)

	assert.LessOrEqual(t, elapsed, 700*time.Millisecond)
	assert.GreaterOrEqual(t, b.processed.Load(), int64(8))
}

func TestDispatcher_NoThiefFallback(t *testing.T) {
	d := dispatch.New()
	d.Start()
	defer d.Shutdown()

	a := newCountingActor(100 * time.Millisecond)
	require.NoError(t, d.Register(a))

	for i := 0; i < 3; i++ {
		a.Send(i, nil)
		require.NoError(t, d.Dispatch(a))
	}

	waitUntil(t, time.Second, func() bool { return a.processed.Load() == 3 })
}

func TestDispatcher_RegisterRejectsHeterogeneousType(t *testing.T) {
	d := dispatch.New()
	d.Start()
	defer d.Shutdown()

	a := newCountingActor(0)
	require.NoError(t, d.Register(a))

	other := actorkit.NewLocalActor(reflect.TypeOf("not-a-counting-actor"), func(any) (any, error) { return nil, nil })
	assert.Error(t, d.Register(other))
}

func TestDispatcher_RegisterThenUnregisterLeavesMembersUnchanged(t *testing.T) {
	d := dispatch.New()
	d.Start()
	defer d.Shutdown()

	a := newCountingActor(0)
	require.NoError(t, d.Register(a))
	before := len(d.Members())

	b := newCountingActor(0)
	require.NoError(t, d.Register(b))
	d.Unregister(b)

	assert.Equal(t, before, len(d.Members()))
}

func TestDispatcher_DispatchBeforeStartErrors(t *testing.T) {
	d := dispatch.New()
	a := newCountingActor(0)
	err := d.Dispatch(a)
	assert.Error(t, err)
}

func TestDispatcher_SecondStartErrors(t *testing.T) {
	d := dispatch.New()
	require.NoError(t, d.Start())
	defer d.Shutdown()

	assert.Error(t, d.Start())
}

func TestDispatcher_MutualExclusionAcrossConcurrentDispatch(t *testing.T) {
	d := dispatch.New(dispatch.WithNumShards(8))
	d.Start()
	defer d.Shutdown()

	var inFlight atomic.Int32
	var sawOverlap atomic.Bool
	a := &countingActor{}
	a.LocalActor = actorkit.NewLocalActor(reflect.TypeOf(a), func(msg any) (any, error) {
		if inFlight.Add(1) > 1 {
			sawOverlap.Store(true)
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		a.processed.Add(1)
		return nil, nil
	})
	require.NoError(t, d.Register(a))

	for i := 0; i < 50; i++ {
		a.Send(i, nil)
		require.NoError(t, d.Dispatch(a))
	}

	waitUntil(t, 2*time.Second, func() bool { return a.processed.Load() == 50 })
	assert.False(t, sawOverlap.Load())
}
