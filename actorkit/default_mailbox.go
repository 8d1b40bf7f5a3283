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
	"sync"

	akerrors "github.com/dr3s/akka/errors"
)

var errMailboxDisposed = akerrors.ErrMailboxDisposed

// dmNode is a node of DefaultMailbox's internal doubly linked list, pooled
// to avoid per-message allocation, mirroring the node-pooling idiom of the
// actor runtime's own lock-free mailbox.
type dmNode struct {
	prev, next *dmNode
	env        *Envelope
}

var dmNodePool = sync.Pool{New: func() any { return new(dmNode) }}

// DefaultMailbox is the default unbounded mailbox used by the dispatcher.
//
// Unlike a plain singly linked MPSC queue, DefaultMailbox supports removal
// from either end: PollHead for ordinary delivery and PollTail for work
// donation. Both ends are guarded by a single mutex; the critical section
// is a handful of pointer writes, so contention is brief and Enqueue/Poll*
// never block waiting for data to arrive.
type DefaultMailbox struct {
	mu       sync.Mutex
	head     *dmNode
	tail     *dmNode
	length   int
	disposed bool
}

// enforce compilation error when the interface contract changes
var _ Mailbox = (*DefaultMailbox)(nil)

// NewDefaultMailbox creates an empty DefaultMailbox.
func NewDefaultMailbox() *DefaultMailbox {
	return &DefaultMailbox{}
}

// Enqueue places env at the tail of the mailbox. Never blocks; returns nil
// unless the mailbox has been disposed.
func (m *DefaultMailbox) Enqueue(env *Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return errMailboxDisposed
	}
	n := dmNodePool.Get().(*dmNode)
	n.env = env
	n.prev = m.tail
	n.next = nil
	if m.tail != nil {
		m.tail.next = n
	} else {
		m.head = n
	}
	m.tail = n
	m.length++
	return nil
}

// PollHead removes and returns the envelope at the head of the mailbox.
func (m *DefaultMailbox) PollHead() *Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.head == nil {
		return nil
	}
	n := m.head
	m.head = n.next
	if m.head != nil {
		m.head.prev = nil
	} else {
		m.tail = nil
	}
	m.length--
	env := n.env
	*n = dmNode{}
	dmNodePool.Put(n)
	return env
}

// PollTail removes and returns the envelope at the tail of the mailbox.
// Used only by the dispatcher's donation path.
func (m *DefaultMailbox) PollTail() *Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tail == nil {
		return nil
	}
	n := m.tail
	m.tail = n.prev
	if m.tail != nil {
		m.tail.next = nil
	} else {
		m.head = nil
	}
	m.length--
	env := n.env
	*n = dmNode{}
	dmNodePool.Put(n)
	return env
}

// IsEmpty reports whether the mailbox currently holds no envelopes.
func (m *DefaultMailbox) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.head == nil
}

// Len returns the current number of envelopes in the mailbox.
func (m *DefaultMailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.length
}

// Dispose releases the mailbox's contents. Safe to call more than once.
func (m *DefaultMailbox) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
	m.head = nil
	m.tail = nil
	m.length = 0
}
