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

package dispatch

import "time"

// Option configures a WorkStealingDispatcher at construction time.
type Option interface {
	apply(*WorkStealingDispatcher)
}

type optionFunc func(*WorkStealingDispatcher)

func (f optionFunc) apply(d *WorkStealingDispatcher) { f(d) }

// WithName sets the dispatcher's name, used for log messages.
func WithName(name string) Option {
	return optionFunc(func(d *WorkStealingDispatcher) { d.name = name })
}

// WithNumShards sets the number of executor shards. Defaults to 1;
// capped at 128.
func WithNumShards(n int) Option {
	return optionFunc(func(d *WorkStealingDispatcher) { d.numShards = n })
}

// WithIdleWorkerLifetime sets how long an idle worker goroutine may sit
// before the cleanup sweep retires it. Defaults to one second. The sweep
// only retires workers from shards holding more than 400 idle workers.
func WithIdleWorkerLifetime(d time.Duration) Option {
	return optionFunc(func(dd *WorkStealingDispatcher) { dd.idleWorkerLifetime = d })
}
