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

import "math"

// Filter maps a (pressure, capacity) reading to a capacity delta. It is
// the composition point between a Pressure reading and a CapacityStrategy.
type Filter func(pressure, capacity int) int

// BasicRampup grows the pool by ceil(rate * capacity) once pressure has
// caught up with capacity; otherwise contributes nothing.
func BasicRampup(rate float64) Filter {
	return func(pressure, capacity int) int {
		if pressure >= capacity {
			return int(math.Ceil(rate * float64(capacity)))
		}
		return 0
	}
}

// BasicBackoff returns ceil(-rate * capacity), shrinking the pool by
// floor(rate * capacity), once the pressure-to-capacity ratio falls under
// threshold; otherwise contributes nothing.
func BasicBackoff(threshold, rate float64) Filter {
	return func(pressure, capacity int) int {
		if capacity > 0 && float64(pressure)/float64(capacity) < threshold {
			return int(math.Ceil(-rate * float64(capacity)))
		}
		return 0
	}
}

// BasicFilter sums a rampup and a backoff filter's outputs. Both are
// always evaluated — even the one that ultimately contributes zero — so
// any internal counters they maintain (as RunningMeanBackoff does) stay
// consistent across calls regardless of which regime the pool is in.
func BasicFilter(rampup, backoff Filter) Filter {
	return func(pressure, capacity int) int {
		up := rampup(pressure, capacity)
		down := backoff(pressure, capacity)
		return up + down
	}
}

// RunningMeanBackoffFilter additionally tracks cumulative pressure and
// capacity across every call and only backs off when both the
// instantaneous ratio and the running-mean ratio fall under threshold.
// Its magnitude, floor(rate * (capacity - pressure)), is proportional to
// the current slack rather than a flat fraction of capacity; at the same
// rate it is never larger than BasicBackoff's cut.
type RunningMeanBackoffFilter struct {
	threshold float64
	rate      float64

	sumPressure float64
	sumCapacity float64
}

// RunningMeanBackoff constructs a RunningMeanBackoffFilter. Call its
// Filter method wherever a Filter value is expected; the receiver carries
// the accumulators a plain func value could not.
func RunningMeanBackoff(threshold, rate float64) *RunningMeanBackoffFilter {
	return &RunningMeanBackoffFilter{threshold: threshold, rate: rate}
}

// Filter implements the Filter function type.
func (f *RunningMeanBackoffFilter) Filter(pressure, capacity int) int {
	f.sumPressure += float64(pressure)
	f.sumCapacity += float64(capacity)

	if capacity <= 0 {
		return 0
	}
	instant := float64(pressure) / float64(capacity)
	meanRatio := 1.0
	if f.sumCapacity > 0 {
		meanRatio = f.sumPressure / f.sumCapacity
	}
	if instant < f.threshold && meanRatio < f.threshold {
		return -int(math.Floor(f.rate * float64(capacity-pressure)))
	}
	return 0
}

// Reset clears both running accumulators. The source this was grounded
// on reset only one of the two (a line computing and discarding
// `_pressure - 0.0` instead of assigning it); both are zeroed here.
func (f *RunningMeanBackoffFilter) Reset() {
	f.sumPressure = 0
	f.sumCapacity = 0
}
