package poolrouter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dr3s/akka/actorkit"
	"github.com/dr3s/akka/poolrouter"
)

func TestFixedSize_OnlyGrowsUpToLimit(t *testing.T) {
	strategy := poolrouter.FixedSize(3)

	var delegates []actorkit.ActorRef
	assert.Equal(t, 3, strategy.Capacity(delegates))

	delegates = append(delegates, newDelegate(), newDelegate(), newDelegate())
	assert.Equal(t, 0, strategy.Capacity(delegates))
}

func TestBounded_ClampsToLowerAndUpper(t *testing.T) {
	eval := poolrouter.Eval(
		poolrouter.MailboxPressure(0),
		poolrouter.BasicRampup(10), // wildly oversized rate to force clamping
	)
	strategy := poolrouter.Bounded(2, 4, eval)

	var delegates []actorkit.ActorRef
	for i := 0; i < 2; i++ {
		delegates = append(delegates, newDelegate())
	}
	delegates[0].Send("m", nil) // mailbox size 1 > threshold 0, so pressure counts it
	delegates[1].Send("m", nil) // pressure 2 >= capacity 2, so rampup asks for ceil(10*2) = 20

	delta := strategy.Capacity(delegates)
	assert.LessOrEqual(t, len(delegates)+delta, 4)
	assert.GreaterOrEqual(t, len(delegates)+delta, 2)
}

func TestBounded_NeverDropsBelowLower(t *testing.T) {
	eval := poolrouter.Eval(poolrouter.MailboxPressure(100), poolrouter.BasicBackoff(1, 1))
	strategy := poolrouter.Bounded(2, 8, eval)

	delegates := []actorkit.ActorRef{newDelegate(), newDelegate()}
	delta := strategy.Capacity(delegates)
	assert.GreaterOrEqual(t, len(delegates)+delta, 2)
}
