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

// Package poolrouter implements PoolRouter: an actor that owns a dynamic
// pool of delegate actors, grows or shrinks it per a pluggable capacity
// strategy, picks recipients per a pluggable selector, and forwards
// messages — chaining a delegate's ask reply back to the original caller
// without blocking its own receive loop.
package poolrouter

import (
	"fmt"
	"reflect"
	"time"

	"github.com/dr3s/akka/actorkit"
	"github.com/dr3s/akka/dispatch"
	akerrors "github.com/dr3s/akka/errors"
	"github.com/dr3s/akka/log"
)

const (
	defaultShrinkGracePeriod = time.Second
	shrinkPollInterval       = 5 * time.Millisecond
)

// Config bundles the three extension points a Router is built from: the
// delegate factory, the selection policy, and the capacity policy. A
// Router is only as good as this composition — it has no routing logic
// of its own beyond the pipeline these three drive.
type Config struct {
	// Instance creates a new delegate. The router calls StartLinkedTo on
	// each delegate it creates, so supervision flows through the router.
	Instance func() (actorkit.ActorRef, error)
	Selector Selector
	Capacity CapacityStrategy
}

// Stats is the reply to a Stat control message.
type Stats struct {
	count       int
	delegateIDs []string
}

// Count returns the delegate count at the time Stat was handled.
func (s Stats) Count() int { return s.count }

// DelegateIDs returns the uuid of every live delegate at the time Stat
// was handled, in the router's insertion order.
func (s Stats) DelegateIDs() []string { return s.delegateIDs }

// StatRequest is the control message a caller sends to ask a Router for
// its current Stats. Stat is the conventional zero value to send.
type StatRequest struct{}

// Stat is the StatRequest value callers send to query a Router.
var Stat = StatRequest{}

// DelegateTerminated is the supervision notification a Router reacts to:
// delegate Victim has exceeded its restart budget and must be dropped
// from the pool.
type DelegateTerminated struct {
	Victim actorkit.Identity
}

// Router is a PoolRouter: itself an ActorRef, dispatched like any other
// pool member, whose receive function adjusts capacity, selects
// recipients, and forwards.
type Router struct {
	*actorkit.LocalActor

	name   string
	logger log.Logger

	startDelegate  func() (actorkit.ActorRef, error)
	selector       Selector
	capacity       CapacityStrategy
	dispatcher     *dispatch.WorkStealingDispatcher
	ownsDispatcher bool

	delegates          []actorkit.ActorRef
	lastCapacityDelta  int
	lastSelectionCount int

	retryAttempts     int
	retryWithin       time.Duration
	shrinkGracePeriod time.Duration
}

var _ actorkit.ActorRef = (*Router)(nil)

// New builds a Router from cfg. The router is not linked to any parent
// until its owner calls StartLinkedTo.
func New(cfg Config, opts ...Option) *Router {
	r := &Router{
		name:              "pool-router",
		logger:            log.DefaultLogger,
		selector:          cfg.Selector,
		capacity:          cfg.Capacity,
		shrinkGracePeriod: defaultShrinkGracePeriod,
	}
	for _, opt := range opts {
		opt.apply(r)
	}
	r.startDelegate = delegateFactoryRetry(cfg.Instance, r.retryAttempts, r.retryWithin)
	r.LocalActor = actorkit.NewLocalActor(reflect.TypeOf(r), func(any) (any, error) {
		return nil, nil
	})
	if r.dispatcher == nil {
		r.dispatcher = dispatch.New(dispatch.WithName(r.name + "-delegates"))
		r.dispatcher.Start()
		r.ownsDispatcher = true
	}
	return r
}

// Receive overrides the embedded LocalActor's behavior: a Router's
// message handling depends on the envelope's reply slot and sender, not
// just its message, so it cannot be expressed as the plain ReceiveFunc
// LocalActor expects.
func (r *Router) Receive(env *actorkit.Envelope) {
	switch m := env.Message.(type) {
	case StatRequest:
		stats := r.stats()
		if env.ReplySlot != nil {
			env.ReplySlot.CompleteWithValue(stats)
		}
	case DelegateTerminated:
		r.removeDelegate(m.Victim)
	default:
		r.route(env)
	}
}

func (r *Router) stats() Stats {
	ids := make([]string, len(r.delegates))
	for i, d := range r.delegates {
		ids[i] = string(d.UUID())
	}
	return Stats{count: len(r.delegates), delegateIDs: ids}
}

func (r *Router) removeDelegate(victim actorkit.Identity) {
	for i, d := range r.delegates {
		if d.UUID() == victim {
			r.logger.Errorf("%s: delegate %s exceeded restart retries, removing", r.name, victim)
			r.dispatcher.Unregister(d)
			r.delegates = append(r.delegates[:i], r.delegates[i+1:]...)
			return
		}
	}
}

func (r *Router) route(env *actorkit.Envelope) {
	delta := r.capacity.Capacity(r.delegates)
	r.lastCapacityDelta = delta
	if delta != 0 {
		r.adjustCapacity(delta)
	}

	if len(r.delegates) == 0 {
		if env.ReplySlot != nil {
			env.ReplySlot.CompleteWithError(akerrors.ErrNoDelegatesAvailable)
		}
		return
	}

	recipients, count := r.selector.Select(r.delegates)
	r.lastSelectionCount = count

	for _, d := range recipients {
		if env.ReplySlot == nil {
			d.Send(env.Message, env.Sender)
			if err := r.dispatcher.Dispatch(d); err != nil {
				r.logger.Errorf("%s: dispatch failed for delegate %s: %v", r.name, d.UUID(), err)
			}
			continue
		}
		go r.forwardAsk(d, env)
	}
}

// forwardAsk runs on its own goroutine so the router's own receive never
// blocks on a delegate's reply, per the no-suspension-in-receive
// requirement that governs every message-handling path here. It also
// schedules the delegate's mailbox on the router's dispatcher — Ask only
// enqueues the envelope, same as Send — so the reply slot it just
// returned actually gets completed.
func (r *Router) forwardAsk(d actorkit.ActorRef, env *actorkit.Envelope) {
	slot := d.Ask(env.Message, r)
	if err := r.dispatcher.Dispatch(d); err != nil {
		env.ReplySlot.CompleteWithError(fmt.Errorf("%w: %v", akerrors.ErrDelegateInvocationFailed, err))
		return
	}
	value, err := slot.Result()
	if err != nil {
		env.ReplySlot.CompleteWithError(fmt.Errorf("%w: %v", akerrors.ErrDelegateInvocationFailed, err))
		return
	}
	env.ReplySlot.CompleteWithValue(value)
}

func (r *Router) adjustCapacity(delta int) {
	if delta > 0 {
		grown := 0
		for i := 0; i < delta; i++ {
			d, err := r.startDelegate()
			if err != nil {
				r.logger.Errorf("%s: delegate factory failed: %v", r.name, err)
				continue
			}
			if err := d.StartLinkedTo(r); err != nil {
				r.logger.Errorf("%s: delegate failed to link: %v", r.name, err)
				continue
			}
			if err := r.dispatcher.Register(d); err != nil {
				r.logger.Errorf("%s: delegate failed to register with dispatcher: %v", r.name, err)
				d.Stop()
				continue
			}
			r.delegates = append(r.delegates, d)
			grown++
		}
		r.logger.Debugf("%s: grew delegate pool by %d to %d", r.name, grown, len(r.delegates))
		return
	}

	n := -delta
	if n > len(r.delegates) {
		n = len(r.delegates)
	}
	if n == 0 {
		return
	}
	cut := len(r.delegates) - n
	removed := append([]actorkit.ActorRef(nil), r.delegates[cut:]...)
	r.delegates = r.delegates[:cut]
	r.logger.Debugf("%s: shrinking delegate pool by %d to %d", r.name, n, len(r.delegates))
	for _, d := range removed {
		go r.drainAndStop(d)
	}
}

// drainAndStop gives a delegate split off by a shrink step up to
// shrinkGracePeriod to finish its own queued work before stopping it
// outright. Messages still queued when the grace period runs out are
// discarded by Stop.
func (r *Router) drainAndStop(d actorkit.ActorRef) {
	deadline := time.Now().Add(r.shrinkGracePeriod)
	for d.MailboxSize() > 0 && time.Now().Before(deadline) {
		time.Sleep(shrinkPollInterval)
	}
	r.dispatcher.Unregister(d)
	d.Stop()
}

// Stop overrides the embedded LocalActor's Stop to also shut down the
// dispatcher driving this router's delegate pool, so stopping a router
// never leaves its own worker pool running behind it. A dispatcher
// supplied via WithDispatcher is left running: the router does not own
// its lifecycle when the caller shares it across actors.
func (r *Router) Stop() {
	if r.ownsDispatcher {
		r.dispatcher.Shutdown()
	}
	r.LocalActor.Stop()
}

// LastCapacityDelta returns the delta computed by the most recent route
// step, for diagnostics and tests.
func (r *Router) LastCapacityDelta() int { return r.lastCapacityDelta }

// LastSelectionCount returns the selection size of the most recent route
// step, for diagnostics and tests.
func (r *Router) LastSelectionCount() int { return r.lastSelectionCount }

// Delegates returns a snapshot of the router's current delegate set.
func (r *Router) Delegates() []actorkit.ActorRef {
	return append([]actorkit.ActorRef(nil), r.delegates...)
}
