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
	gods "github.com/Workiva/go-datastructures/queue"

	akerrors "github.com/dr3s/akka/errors"
)

// BoundedMailbox is a fixed-capacity mailbox backed by a ring buffer. It
// exists for embedders who want producer back-pressure on a specific
// actor; the dispatcher itself treats it like any other Mailbox and makes
// no assumption that mailboxes are unbounded.
//
// PollTail is O(n) on this implementation: the ring buffer only exposes
// head access natively, so donation pops by draining into a scratch slice
// and re-pushing everything but the last element. This mailbox is meant
// for low-volume, back-pressured actors; high-churn donation sources
// should use DefaultMailbox instead.
type BoundedMailbox struct {
	underlying *gods.RingBuffer
	capacity   uint64
}

var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a bounded mailbox with the given capacity.
// A non-positive capacity is treated as 1.
func NewBoundedMailbox(capacity int) *BoundedMailbox {
	if capacity <= 0 {
		capacity = 1
	}
	return &BoundedMailbox{
		underlying: gods.NewRingBuffer(uint64(capacity)),
		capacity:   uint64(capacity),
	}
}

// Enqueue inserts env at the tail. Returns ErrMailboxFull when the ring
// buffer has no free slot.
func (m *BoundedMailbox) Enqueue(env *Envelope) error {
	if uint64(m.underlying.Len()) >= m.capacity {
		return akerrors.ErrMailboxFull
	}
	return m.underlying.Put(env)
}

// PollHead removes and returns the envelope at the head of the mailbox.
func (m *BoundedMailbox) PollHead() *Envelope {
	if m.underlying.Len() == 0 {
		return nil
	}
	item, err := m.underlying.Get()
	if err != nil {
		return nil
	}
	if env, ok := item.(*Envelope); ok {
		return env
	}
	return nil
}

// PollTail removes and returns the envelope most recently enqueued,
// draining and replaying the remaining items to preserve their order.
func (m *BoundedMailbox) PollTail() *Envelope {
	n := int(m.underlying.Len())
	if n == 0 {
		return nil
	}
	items := make([]*Envelope, 0, n)
	for i := 0; i < n; i++ {
		item, err := m.underlying.Get()
		if err != nil {
			break
		}
		if env, ok := item.(*Envelope); ok {
			items = append(items, env)
		}
	}
	if len(items) == 0 {
		return nil
	}
	last := items[len(items)-1]
	for _, env := range items[:len(items)-1] {
		_ = m.underlying.Put(env)
	}
	return last
}

// IsEmpty reports whether the mailbox currently holds no envelopes.
func (m *BoundedMailbox) IsEmpty() bool {
	return m.underlying.Len() == 0
}

// Len returns the current number of envelopes in the mailbox.
func (m *BoundedMailbox) Len() int {
	return int(m.underlying.Len())
}

// Dispose discards any queued envelopes, then releases resources held by
// the underlying ring buffer and unblocks any internal waiters it
// maintains.
func (m *BoundedMailbox) Dispose() {
	for m.PollHead() != nil {
	}
	m.underlying.Dispose()
}
