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
	"context"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/dr3s/akka/actorkit"
	akerrors "github.com/dr3s/akka/errors"
)

// delegateFactoryRetry wraps a delegate factory with a bounded retry: a
// recoverable lifecycle operation gets a few bounded attempts before the
// caller gives up, rather than failing the whole capacity step on one
// transient factory error.
func delegateFactoryRetry(factory func() (actorkit.ActorRef, error), attempts int, within time.Duration) func() (actorkit.ActorRef, error) {
	if attempts <= 0 || within <= 0 {
		return factory
	}
	return func() (actorkit.ActorRef, error) {
		var delegate actorkit.ActorRef
		retrier := retry.NewRetrier(attempts, within, within)
		err := retrier.RunContext(context.Background(), func(context.Context) error {
			d, ferr := factory()
			if ferr != nil {
				return ferr
			}
			delegate = d
			return nil
		})
		if err != nil {
			return nil, akerrors.ErrDelegateStartFailed
		}
		return delegate, nil
	}
}
