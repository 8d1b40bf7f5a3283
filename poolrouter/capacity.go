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

import "github.com/dr3s/akka/actorkit"

// CapacityStrategy computes the requested change in delegate count for
// the current message: positive to grow, negative to shrink, zero to
// hold steady.
type CapacityStrategy interface {
	Capacity(delegates []actorkit.ActorRef) int
}

type capacityFunc func([]actorkit.ActorRef) int

func (f capacityFunc) Capacity(delegates []actorkit.ActorRef) int { return f(delegates) }

// FixedSize only ever grows the pool, up to limit; once |delegates|
// reaches limit it never shrinks.
func FixedSize(limit int) CapacityStrategy {
	return capacityFunc(func(delegates []actorkit.ActorRef) int {
		if d := limit - len(delegates); d > 0 {
			return d
		}
		return 0
	})
}

// Eval composes a Pressure reading with a Filter into the
// delegates-to-delta function Bounded expects, bridging the two
// independently pluggable strategy halves spec'd separately.
func Eval(pressure Pressure, filter Filter) func([]actorkit.ActorRef) int {
	return func(delegates []actorkit.ActorRef) int {
		return filter(pressure(delegates), len(delegates))
	}
}

// Bounded clamps eval's requested delta so that lower <= |delegates| +
// delta <= upper always holds.
func Bounded(lower, upper int, eval func([]actorkit.ActorRef) int) CapacityStrategy {
	return capacityFunc(func(delegates []actorkit.ActorRef) int {
		n := len(delegates)
		delta := eval(delegates)
		if n+delta < lower {
			delta = lower - n
		}
		if n+delta > upper {
			delta = upper - n
		}
		return delta
	})
}
