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

import "reflect"

// ActorRef is the observable surface of an actor that the dispatch and
// poolrouter packages depend on. It is deliberately narrow: the actor
// abstraction itself (behavior, lifecycle hooks beyond start/stop,
// supervision strategy) lives outside this core, per spec §1's scope.
type ActorRef interface {
	// Mailbox returns the actor's mailbox.
	Mailbox() Mailbox
	// MailboxSize is a convenience equivalent to Mailbox().Len().
	MailboxSize() int

	// Send enqueues msg at the mailbox's tail with no reply expectation.
	Send(msg any, sender ActorRef)
	// Ask enqueues msg with a reply slot and returns it.
	Ask(msg any, sender ActorRef) *ReplySlot
	// Receive delivers a single envelope synchronously to the actor's
	// behavior. Called only by the dispatcher's drain loop, which already
	// holds the actor's try-lock.
	Receive(env *Envelope)

	// TryLock attempts to acquire the actor's non-reentrant dispatcher
	// lock. Never blocks.
	TryLock() bool
	// Unlock releases the dispatcher lock. Must only be called by the
	// holder.
	Unlock()

	// HasPendingReply reports whether the actor holds an unanswered Ask:
	// a reply slot enqueued on it that it has not yet completed.
	HasPendingReply() bool

	// ConcreteType returns a type token used for pool homogeneity checks.
	ConcreteType() reflect.Type
	// UUID returns the actor's stable identity.
	UUID() Identity

	// Stop terminates the actor.
	Stop()
	// StartLinkedTo starts the actor with parent as its supervisor, so
	// failures propagate to parent.
	StartLinkedTo(parent ActorRef) error
}
