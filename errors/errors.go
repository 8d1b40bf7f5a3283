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

// Package errors collects the sentinel errors raised by the dispatch and
// poolrouter packages, following the actor runtime convention of one
// package-level var per recognized error kind instead of ad hoc
// fmt.Errorf calls scattered through the implementation.
package errors

import "errors"

var (
	// ErrDispatcherNotStarted is returned by Dispatch when the dispatcher's
	// active flag has not been flipped by Start, or was cleared by Shutdown.
	ErrDispatcherNotStarted = errors.New("dispatcher not started")

	// ErrExecutorAlreadyBuilt is returned when a caller attempts to
	// reconfigure a dispatcher's worker pool after Start has run.
	ErrExecutorAlreadyBuilt = errors.New("executor already built")

	// ErrHeterogeneousPoolMember is returned by Register when the actor's
	// concrete type does not match the dispatcher's pinned member type.
	ErrHeterogeneousPoolMember = errors.New("registered actor type does not match pool member type")

	// ErrMailboxDisposed is returned by mailbox operations performed after
	// Dispose.
	ErrMailboxDisposed = errors.New("mailbox has been disposed")

	// ErrMailboxFull is returned by BoundedMailbox.Enqueue when the ring
	// buffer has no free slot; Enqueue does not block.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrNoDelegatesAvailable is returned by the router when it must select
	// recipients from an empty delegate set.
	ErrNoDelegatesAvailable = errors.New("router has no delegates available")

	// ErrDelegateStartFailed is returned when a router's delegate factory
	// exhausts its retry budget without producing a usable ActorRef.
	ErrDelegateStartFailed = errors.New("router delegate failed to start")

	// ErrDelegateInvocationFailed wraps an error raised by a delegate's Ask
	// call; it is the error completed on the caller's reply slot, never
	// retried by the router itself.
	ErrDelegateInvocationFailed = errors.New("delegate invocation failed")
)
