// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package dispatch implements the work-stealing message dispatcher: the
// subsystem that pulls messages from per-actor mailboxes, enforces the
// single-consumer-per-actor invariant via each actor's try-lock, and
// donates tail-polled work from a busy owner to an idle peer when the
// owner is already being drained by another worker.
package dispatch

import (
	"reflect"
	"sync/atomic"
	"time"

	akerrors "github.com/dr3s/akka/errors"
	"github.com/dr3s/akka/actorkit"
	"github.com/dr3s/akka/internal/slice"
	"github.com/dr3s/akka/log"
)

// WorkStealingDispatcher owns a worker thread pool and a registry of
// homogeneous pool members. Dispatch schedules a task that either drains
// the receiver's mailbox directly, or — when the receiver is already
// being drained by another worker — donates the receiver's queued
// messages to an idle peer and drains the peer instead.
type WorkStealingDispatcher struct {
	name               string
	numShards          int
	idleWorkerLifetime time.Duration

	exec   *executor
	active atomic.Bool

	members        *slice.CopyOnWrite[actorkit.ActorRef]
	memberType     atomic.Pointer[reflect.Type]
	lastThiefIndex atomic.Int64

	logger log.Logger
}

// New creates a WorkStealingDispatcher. The dispatcher is not usable
// until Start is called.
func New(opts ...Option) *WorkStealingDispatcher {
	d := &WorkStealingDispatcher{
		name:               "work-stealing-dispatcher",
		numShards:          1,
		idleWorkerLifetime: time.Second,
		members:            slice.New[actorkit.ActorRef](),
		logger:             log.DefaultLogger,
	}
	for _, opt := range opts {
		opt.apply(d)
	}
	return d
}

// Start builds the executor and flips the dispatcher active. A second call
// on an already-started dispatcher does not rebuild the executor — its
// shard count and idle-worker lifetime are fixed at the first Start — and
// reports ErrExecutorAlreadyBuilt instead.
func (d *WorkStealingDispatcher) Start() error {
	if d.active.Swap(true) {
		return akerrors.ErrExecutorAlreadyBuilt
	}
	d.exec = newExecutor(d.numShards, d.idleWorkerLifetime)
	d.exec.start()
	return nil
}

// Register adds a to the pool. The first registered actor's concrete type
// becomes the pool's pinned member type; later registrations of a
// different concrete type are rejected. Registering an actor whose UUID
// is already a member leaves the pool unchanged.
func (d *WorkStealingDispatcher) Register(a actorkit.ActorRef) error {
	t := a.ConcreteType()
	if !d.memberType.CompareAndSwap(nil, &t) {
		pinned := *d.memberType.Load()
		if pinned != t {
			return akerrors.ErrHeterogeneousPoolMember
		}
	}
	for _, m := range d.members.Snapshot() {
		if m.UUID() == a.UUID() {
			return nil
		}
	}
	d.members.Append(a)
	return nil
}

// Unregister removes a from the pool, if present.
func (d *WorkStealingDispatcher) Unregister(a actorkit.ActorRef) {
	d.members.RemoveFunc(func(m actorkit.ActorRef) bool { return m.UUID() == a.UUID() })
}

// Dispatch schedules the processing of receiver's mailbox. The caller is
// expected to have already enqueued the message onto receiver (via
// receiver.Send or receiver.Ask) before calling Dispatch — enqueue and
// schedule are separate steps, not one call.
// One Dispatch call produces exactly one scheduled task, which may drain
// both receiver and a donated-to thief within its run.
func (d *WorkStealingDispatcher) Dispatch(receiver actorkit.ActorRef) error {
	if !d.active.Load() {
		return akerrors.ErrDispatcherNotStarted
	}
	d.exec.submit(func() { d.runOne(receiver) })
	return nil
}

func (d *WorkStealingDispatcher) runOne(receiver actorkit.ActorRef) {
	if d.tryProcessMailbox(receiver) {
		return
	}
	thief, ok := d.findThief(receiver)
	if !ok {
		return
	}
	d.tryDonateAndProcessMessages(receiver, thief)
}

// tryProcessMailbox attempts to acquire receiver's try-lock and drain its
// mailbox, retrying while a producer may have raced the last empty poll
// against this worker's release of the lock. Returns whether this worker
// drained at least once.
func (d *WorkStealingDispatcher) tryProcessMailbox(a actorkit.ActorRef) bool {
	markDrained := false
	for {
		if !a.TryLock() {
			break
		}
		d.drain(a)
		a.Unlock()
		markDrained = true

		if !a.Mailbox().IsEmpty() {
			continue
		}
		break
	}
	return markDrained
}

// drain repeatedly polls the head of a's mailbox and invokes its receive
// function. A panic inside the receive function is the actor's concern:
// it is caught and logged so the drain loop continues with the next
// message instead of killing the worker.
func (d *WorkStealingDispatcher) drain(a actorkit.ActorRef) {
	for {
		env := a.Mailbox().PollHead()
		if env == nil {
			return
		}
		d.safeReceive(a, env)
	}
}

func (d *WorkStealingDispatcher) safeReceive(a actorkit.ActorRef, env *actorkit.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorf("%s: actor %s receive panicked: %v", d.name, a.UUID(), r)
		}
	}()
	a.Receive(env)
}

// findThief scans a snapshot of members, starting at lastThiefIndex, for
// the first actor other than receiver whose mailbox is currently empty.
// It tolerates concurrent Register/Unregister: the scan works against the
// snapshot it took, never the live registry.
func (d *WorkStealingDispatcher) findThief(receiver actorkit.ActorRef) (actorkit.ActorRef, bool) {
	snapshot := d.members.Snapshot()
	n := len(snapshot)
	if n == 0 {
		return nil, false
	}
	start := int(d.lastThiefIndex.Load() % int64(n))
	if start < 0 {
		start += n
	}
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		candidate := snapshot[idx]
		if candidate.UUID() == receiver.UUID() {
			continue
		}
		if candidate.Mailbox().IsEmpty() {
			d.lastThiefIndex.Store(int64((idx + 1) % n))
			return candidate, true
		}
	}
	return nil, false
}

// tryDonateAndProcessMessages moves receiver's queued messages (tail
// first) onto thief's mailbox and then drains thief. The reply slot of a
// donated envelope, if any, is dropped: Send re-enqueues only the
// message, not the original envelope. See DESIGN.md for this tradeoff.
//
// The whole tail is donated before the single drain(thief) call below
// rather than interleaving one donation with one drain step; both orders
// drain the same messages, so this is a deliberate batching, not a
// shortcut.
func (d *WorkStealingDispatcher) tryDonateAndProcessMessages(receiver, thief actorkit.ActorRef) {
	if !thief.TryLock() {
		return
	}
	defer thief.Unlock()

	donated := 0
	for {
		env := receiver.Mailbox().PollTail()
		if env == nil {
			break
		}
		thief.Send(env.Message, env.Sender)
		donated++
	}
	if donated > 0 {
		d.logger.Debugf("%s: donated %d message(s) from %s to %s", d.name, donated, receiver.UUID(), thief.UUID())
	}
	d.drain(thief)
}

// Shutdown stops the executor immediately and clears all member
// references. Messages still queued in mailboxes after Shutdown are not
// drained.
func (d *WorkStealingDispatcher) Shutdown() {
	if !d.active.Swap(false) {
		return
	}
	if d.exec != nil {
		d.exec.stop()
	}
	d.members = slice.New[actorkit.ActorRef]()
}

// Active reports whether the dispatcher is currently started.
func (d *WorkStealingDispatcher) Active() bool { return d.active.Load() }

// Members returns a snapshot of the currently registered actors.
func (d *WorkStealingDispatcher) Members() []actorkit.ActorRef { return d.members.Snapshot() }

// SpawnedWorkers returns the current count of live executor goroutines,
// for diagnostics and tests.
func (d *WorkStealingDispatcher) SpawnedWorkers() int {
	if d.exec == nil {
		return 0
	}
	return d.exec.spawnedCount()
}
