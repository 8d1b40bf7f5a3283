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

// Package slice provides a copy-on-write generic slice used by the
// dispatcher's member registry, where reads (FindThief's snapshot scan)
// vastly outnumber writes (Register/Unregister) and must never block a
// concurrent dispatch.
package slice

import (
	"sync/atomic"
	"unsafe"
)

type header[T any] struct {
	data []T
}

// CopyOnWrite is a slice that can be safely shared between goroutines.
// Append and Remove build a new backing array and atomically swap it in;
// Snapshot and Get read the current array without taking a lock, so an
// in-flight Snapshot is never blocked by, or blocks, a concurrent mutation.
type CopyOnWrite[T any] struct {
	head unsafe.Pointer
}

// New creates an empty CopyOnWrite slice.
func New[T any]() *CopyOnWrite[T] {
	return &CopyOnWrite[T]{
		head: unsafe.Pointer(&header[T]{data: make([]T, 0)}),
	}
}

// Len returns the current number of items.
func (cs *CopyOnWrite[T]) Len() int {
	return len((*header[T])(atomic.LoadPointer(&cs.head)).data)
}

// Append adds item, retrying the compare-and-swap if a concurrent writer
// raced ahead.
func (cs *CopyOnWrite[T]) Append(item T) {
	for {
		currentHead := (*header[T])(atomic.LoadPointer(&cs.head))
		newData := make([]T, len(currentHead.data)+1)
		copy(newData, currentHead.data)
		newData[len(currentHead.data)] = item
		newHead := &header[T]{data: newData}
		if atomic.CompareAndSwapPointer(&cs.head, unsafe.Pointer(currentHead), unsafe.Pointer(newHead)) {
			return
		}
	}
}

// Get returns the item at index, or the zero value if index is out of
// range for the current snapshot.
func (cs *CopyOnWrite[T]) Get(index int) (item T) {
	data := (*header[T])(atomic.LoadPointer(&cs.head)).data
	if index >= 0 && index < len(data) {
		return data[index]
	}
	var zero T
	return zero
}

// RemoveFunc removes the first item for which match returns true. It is a
// no-op if no item matches.
func (cs *CopyOnWrite[T]) RemoveFunc(match func(T) bool) {
	for {
		currentHead := (*header[T])(atomic.LoadPointer(&cs.head))
		index := -1
		for i, v := range currentHead.data {
			if match(v) {
				index = i
				break
			}
		}
		if index == -1 {
			return
		}
		newData := make([]T, 0, len(currentHead.data)-1)
		newData = append(newData, currentHead.data[:index]...)
		newData = append(newData, currentHead.data[index+1:]...)
		newHead := &header[T]{data: newData}
		if atomic.CompareAndSwapPointer(&cs.head, unsafe.Pointer(currentHead), unsafe.Pointer(newHead)) {
			return
		}
	}
}

// Snapshot returns the slice backing the current version. The returned
// slice is never mutated in place by Append/RemoveFunc (they always build
// a new array), so callers may range over it after the registry has
// already moved on without any extra synchronization.
func (cs *CopyOnWrite[T]) Snapshot() []T {
	return (*header[T])(atomic.LoadPointer(&cs.head)).data
}
