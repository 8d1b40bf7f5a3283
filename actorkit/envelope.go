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

import "sync"

// Envelope is the unit of delivery between actors: a message plus an
// optional reply slot and sender identity. ReplySlot is the only mutable
// field on an envelope; everything else is set once at construction and
// read by the dispatcher and the actor's receive function.
type Envelope struct {
	Message   any
	ReplySlot *ReplySlot
	Sender    ActorRef
}

// NewEnvelope wraps message for delivery with no sender and no reply
// expectation (a fire-and-forget Send).
func NewEnvelope(message any) *Envelope {
	return &Envelope{Message: message}
}

// NewAskEnvelope wraps message together with a fresh ReplySlot, used for
// Ask-style delivery where the caller expects exactly one completion.
func NewAskEnvelope(message any, sender ActorRef) (*Envelope, *ReplySlot) {
	slot := newReplySlot()
	return &Envelope{Message: message, ReplySlot: slot, Sender: sender}, slot
}

// ReplySlot is a single-assignment cell completed with either a value or
// an error. Exactly one of CompleteWithValue or CompleteWithError may run;
// subsequent calls are no-ops, mirroring the accept-once semantics of the
// reply future this was grounded on.
type ReplySlot struct {
	once sync.Once
	done chan struct{}
	val  any
	err  error
}

func newReplySlot() *ReplySlot {
	return &ReplySlot{done: make(chan struct{})}
}

// CompleteWithValue completes the slot successfully. Safe to call from any
// goroutine; only the first call takes effect.
func (r *ReplySlot) CompleteWithValue(value any) {
	r.once.Do(func() {
		r.val = value
		close(r.done)
	})
}

// CompleteWithError completes the slot with a failure. Safe to call from
// any goroutine; only the first call takes effect.
func (r *ReplySlot) CompleteWithError(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done returns a channel closed once the slot has been completed, for
// callers that want to select on it alongside a timeout or context.
func (r *ReplySlot) Done() <-chan struct{} {
	return r.done
}

// Result blocks until the slot is completed and returns its value or
// error. It does not itself apply a timeout; compose with Done() and a
// select when a deadline is required.
func (r *ReplySlot) Result() (any, error) {
	<-r.done
	return r.val, r.err
}
