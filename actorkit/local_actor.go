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

package actorkit

import (
	"reflect"
	"sync/atomic"
)

// ReceiveFunc is the user-supplied behavior of a LocalActor. It returns a
// value to complete a pending ReplySlot with (ignored for fire-and-forget
// Send) and an error, which is reported through OnError for Send-delivered
// messages or used to fail the ReplySlot for Ask-delivered ones.
type ReceiveFunc func(msg any) (any, error)

// LocalActor is a minimal concrete ActorRef: a mailbox, a non-reentrant
// try-lock, and a user-supplied ReceiveFunc. It stands in for the richer
// actor abstraction that spec §1 places out of scope, and is what the
// test suite uses as a delegate.
//
// The try-lock is an idle/busy atomic CAS: Store idle, CompareAndSwap(idle,
// busy) to acquire, Store(idle) to release.
type LocalActor struct {
	id           Identity
	mailbox      Mailbox
	receive      ReceiveFunc
	locked       atomic.Int32
	pendingReply atomic.Bool
	stopped      atomic.Bool
	typeTok      reflect.Type
	parent       ActorRef

	// OnError is invoked for errors raised by receive when the triggering
	// envelope had no reply slot (spec's UserMessageException). It stands
	// in for the out-of-scope actor supervisor.
	OnError func(err error)
}

const (
	lockIdle int32 = 0
	lockBusy int32 = 1
)

var _ ActorRef = (*LocalActor)(nil)

// NewLocalActor creates a LocalActor with an unbounded DefaultMailbox.
// typeTok pins the value returned by ConcreteType; pass reflect.TypeOf(a)
// for some representative value a when pool homogeneity matters.
func NewLocalActor(typeTok reflect.Type, receive ReceiveFunc) *LocalActor {
	return &LocalActor{
		id:      NewIdentity(),
		mailbox: NewDefaultMailbox(),
		receive: receive,
		typeTok: typeTok,
	}
}

func (a *LocalActor) Mailbox() Mailbox { return a.mailbox }
func (a *LocalActor) MailboxSize() int { return a.mailbox.Len() }

func (a *LocalActor) Send(msg any, sender ActorRef) {
	_ = a.mailbox.Enqueue(&Envelope{Message: msg, Sender: sender})
}

func (a *LocalActor) Ask(msg any, sender ActorRef) *ReplySlot {
	env, slot := NewAskEnvelope(msg, sender)
	if err := a.mailbox.Enqueue(env); err != nil {
		slot.CompleteWithError(err)
		return slot
	}
	a.pendingReply.Store(true)
	return slot
}

// Receive invokes the actor's behavior against a single envelope. Called
// only by the dispatcher while it holds this actor's try-lock.
func (a *LocalActor) Receive(env *Envelope) {
	if env.ReplySlot != nil {
		defer a.pendingReply.Store(false)
	}

	value, err := a.receive(env.Message)
	switch {
	case env.ReplySlot != nil && err != nil:
		env.ReplySlot.CompleteWithError(err)
	case env.ReplySlot != nil:
		env.ReplySlot.CompleteWithValue(value)
	case err != nil && a.OnError != nil:
		a.OnError(err)
	}
}

func (a *LocalActor) TryLock() bool {
	return a.locked.CompareAndSwap(lockIdle, lockBusy)
}

func (a *LocalActor) Unlock() {
	a.locked.Store(lockIdle)
}

func (a *LocalActor) HasPendingReply() bool {
	return a.pendingReply.Load()
}

func (a *LocalActor) ConcreteType() reflect.Type { return a.typeTok }
func (a *LocalActor) UUID() Identity             { return a.id }

func (a *LocalActor) Stop() {
	a.stopped.Store(true)
	a.mailbox.Dispose()
}

func (a *LocalActor) StartLinkedTo(parent ActorRef) error {
	a.parent = parent
	a.stopped.Store(false)
	return nil
}

// Stopped reports whether Stop has been called.
func (a *LocalActor) Stopped() bool { return a.stopped.Load() }
