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

// Pressure reduces the current delegate set to a single scalar load
// reading, consumed by a Filter to decide a capacity delta.
type Pressure func(delegates []actorkit.ActorRef) int

// MailboxPressure counts delegates whose mailbox size exceeds threshold.
func MailboxPressure(threshold int) Pressure {
	return func(delegates []actorkit.ActorRef) int {
		count := 0
		for _, d := range delegates {
			if d.MailboxSize() > threshold {
				count++
			}
		}
		return count
	}
}

// ActiveFuturesPressure counts delegates currently holding an unanswered
// Ask, as reported by HasPendingReply.
func ActiveFuturesPressure(delegates []actorkit.ActorRef) int {
	count := 0
	for _, d := range delegates {
		if d.HasPendingReply() {
			count++
		}
	}
	return count
}
