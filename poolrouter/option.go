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

package poolrouter

import (
	"time"

	"github.com/dr3s/akka/dispatch"
	"github.com/dr3s/akka/log"
)

// Option configures a Router at construction time.
type Option interface {
	apply(*Router)
}

type optionFunc func(*Router)

func (f optionFunc) apply(r *Router) { f(r) }

// WithName sets the router's name, used in log messages.
func WithName(name string) Option {
	return optionFunc(func(r *Router) { r.name = name })
}

// WithLogger overrides the router's logger. Defaults to log.DefaultLogger.
func WithLogger(l log.Logger) Option {
	return optionFunc(func(r *Router) { r.logger = l })
}

// WithDelegateRetry bounds the number of attempts (and the backoff
// ceiling between them) the router gives its delegate factory before
// reporting ErrDelegateStartFailed. Zero attempts disables retrying.
func WithDelegateRetry(attempts int, within time.Duration) Option {
	return optionFunc(func(r *Router) {
		r.retryAttempts = attempts
		r.retryWithin = within
	})
}

// WithShrinkGracePeriod bounds how long a delegate split off by a shrink
// step is given to finish draining its own mailbox before the router
// stops it outright. Defaults to one second.
func WithShrinkGracePeriod(d time.Duration) Option {
	return optionFunc(func(r *Router) { r.shrinkGracePeriod = d })
}

// WithDispatcher supplies the WorkStealingDispatcher that drives the
// router's delegate pool, in place of the started-on-construction default
// New builds otherwise. Useful when a pool of delegates should share a
// dispatcher with other actors rather than owning a dedicated one. The
// caller remains responsible for starting and shutting down a supplied
// dispatcher; the router only registers and dispatches its delegates on it.
func WithDispatcher(d *dispatch.WorkStealingDispatcher) Option {
	return optionFunc(func(r *Router) { r.dispatcher = d })
}
