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
	"sort"

	"github.com/dr3s/akka/actorkit"
)

// Selector picks the subset of delegates that receives a given message,
// returning the chosen actors in delivery order together with the
// selection's size.
type Selector interface {
	Select(delegates []actorkit.ActorRef) ([]actorkit.ActorRef, int)
}

type selectorFunc func([]actorkit.ActorRef) ([]actorkit.ActorRef, int)

func (f selectorFunc) Select(delegates []actorkit.ActorRef) ([]actorkit.ActorRef, int) {
	return f(delegates)
}

// SmallestMailbox selects the k delegates with the smallest mailbox size,
// ascending, breaking ties by the delegates slice's existing order (a
// stable sort). If partialFill is true the selection shrinks to
// min(k, len(delegates)); otherwise exactly k slots are filled, repeating
// delegates when k exceeds the pool size.
func SmallestMailbox(k int, partialFill bool) Selector {
	return selectorFunc(func(delegates []actorkit.ActorRef) ([]actorkit.ActorRef, int) {
		if len(delegates) == 0 {
			return nil, 0
		}
		ranked := append([]actorkit.ActorRef(nil), delegates...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].MailboxSize() < ranked[j].MailboxSize()
		})

		take := k
		if partialFill && take > len(ranked) {
			take = len(ranked)
		}
		out := make([]actorkit.ActorRef, take)
		for i := 0; i < take; i++ {
			out[i] = ranked[i%len(ranked)]
		}
		return out, len(out)
	})
}

// RoundRobin selects delegates by advancing a cursor, persistent across
// calls, one slot at a time modulo len(delegates). The cursor starts at
// -1 so the first selection lands on index 0. Exactly take items are
// emitted, where take is k or min(k, len(delegates)) under partialFill —
// an off-by-one present in the dispatch algorithm's source (an inclusive
// upper bound emitting take+1 items) is deliberately not reproduced here.
func RoundRobin(k int, partialFill bool) Selector {
	cursor := -1
	return selectorFunc(func(delegates []actorkit.ActorRef) ([]actorkit.ActorRef, int) {
		if len(delegates) == 0 {
			return nil, 0
		}
		take := k
		if partialFill && take > len(delegates) {
			take = len(delegates)
		}
		out := make([]actorkit.ActorRef, take)
		for i := 0; i < take; i++ {
			cursor = (cursor + 1) % len(delegates)
			out[i] = delegates[cursor]
		}
		return out, len(out)
	})
}
