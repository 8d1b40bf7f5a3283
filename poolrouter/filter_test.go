package poolrouter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dr3s/akka/poolrouter"
)

func TestBasicFilter_IsSumOfRampupAndBackoff(t *testing.T) {
	rampup := poolrouter.BasicRampup(0.5)
	backoff := poolrouter.BasicBackoff(0.3, 0.25)
	composed := poolrouter.BasicFilter(rampup, backoff)

	for _, tc := range []struct{ pressure, capacity int }{
		{10, 10}, {1, 10}, {5, 10}, {0, 0},
	} {
		up := rampup(tc.pressure, tc.capacity)
		down := backoff(tc.pressure, tc.capacity)
		assert.Equal(t, up+down, composed(tc.pressure, tc.capacity))
	}
}

func TestBasicFilter_AtMostOneRegimeNonzero(t *testing.T) {
	rampup := poolrouter.BasicRampup(0.5)
	backoff := poolrouter.BasicBackoff(0.3, 0.25)

	cases := []struct{ pressure, capacity int }{
		{10, 10}, // rampup regime
		{1, 10},  // backoff regime
		{5, 10},  // neither
	}
	for _, tc := range cases {
		up := rampup(tc.pressure, tc.capacity)
		down := backoff(tc.pressure, tc.capacity)
		assert.False(t, up != 0 && down != 0, "both rampup and backoff fired for %+v", tc)
	}
}

func TestRunningMeanBackoff_RequiresBothInstantAndMeanBelowThreshold(t *testing.T) {
	f := poolrouter.RunningMeanBackoff(0.5, 0.25)

	// First call: instantaneous ratio is high, no backoff.
	assert.Equal(t, 0, f.Filter(9, 10))

	// Now push the mean down with a string of low-pressure calls.
	var delta int
	for i := 0; i < 5; i++ {
		delta = f.Filter(1, 10)
	}
	assert.LessOrEqual(t, delta, 0)
}

func TestRunningMeanBackoff_ResetClearsBothAccumulators(t *testing.T) {
	f := poolrouter.RunningMeanBackoff(0.5, 0.25)
	f.Filter(1, 10)
	f.Filter(2, 10)
	f.Reset()

	// Immediately after reset, a single high-pressure call should behave
	// exactly as it would on a freshly constructed filter.
	fresh := poolrouter.RunningMeanBackoff(0.5, 0.25)
	assert.Equal(t, fresh.Filter(9, 10), f.Filter(9, 10))
}
