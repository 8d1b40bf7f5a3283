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

// Mailbox defines the contract for an actor's message queue.
//
// Concurrency and ordering
//   - Implementations MUST be thread-safe for multiple concurrent producers
//     calling Enqueue.
//   - PollHead is intended for a single consumer at a time; the dispatcher
//     enforces this externally via the actor's try-lock. Implementations
//     still must not corrupt state if called concurrently with Enqueue.
//   - PollTail exists only to support work donation: a dispatcher worker
//     that failed to acquire the owner's try-lock calls it while holding
//     the thief's try-lock, then enqueues the popped message onto the
//     thief's mailbox. PollTail and
//     PollHead MUST be atomic with respect to each other so no envelope is
//     ever visible to both a head-consumer and a tail-donor at once.
//   - Default ordering is FIFO from the producer's perspective.
//
// Non-blocking behavior
//   - Enqueue SHOULD be non-blocking. Bounded implementations MUST return
//     an error when full instead of blocking indefinitely.
//   - PollHead and PollTail MUST be non-blocking and return nil when the
//     mailbox is empty; the dispatcher never waits on a mailbox.
//
// Observability
//   - IsEmpty SHOULD be an O(1) snapshot check.
//   - Len returns a snapshot size for metrics. It MAY be approximate under
//     concurrency.
//
// Resource management
//   - Dispose MUST release any resources held by the implementation. After
//     Dispose, Enqueue SHOULD fail and PollHead/PollTail SHOULD return nil.
type Mailbox interface {
	// Enqueue pushes an envelope onto the tail of the mailbox.
	Enqueue(env *Envelope) error
	// PollHead removes and returns the envelope at the head of the
	// mailbox, or nil if empty.
	PollHead() *Envelope
	// PollTail removes and returns the envelope at the tail of the
	// mailbox, or nil if empty. Used only by work donation.
	PollTail() *Envelope
	// IsEmpty reports whether the mailbox currently holds no envelopes.
	IsEmpty() bool
	// Len returns a snapshot of the number of envelopes in the mailbox.
	Len() int
	// Dispose releases resources held by the mailbox. The mailbox MUST NOT
	// be used after Dispose returns.
	Dispose()
}
