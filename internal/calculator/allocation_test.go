package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() Plan {
	return Plan{
		Funds: []string{
			"Navi Nifty India Manufacturing Index Fund",
			"Navi Flexi Cap Fund",
			"Navi Nifty Midcap 150 Index Fund",
			"Navi Nifty 50 Index Fund",
		},
		NormalWeights:  []float64{0.25, 0.25, 0.25, 0.25},
		HighVolWeights: []float64{0.25, 0.325, 0.10, 0.325},
		VolThreshold:   20.0,
	}
}

func fptr(v float64) *float64 { return &v }

func TestAllocate_UniformWeights(t *testing.T) {
	t.Parallel()

	alloc := testPlan().Allocate(20000, nil)
	require.Len(t, alloc, 4)
	for _, e := range alloc {
		assert.Equal(t, int64(5000), e.Amount, "fund %s", e.Fund)
	}
	assert.Equal(t, int64(20000), alloc.Total())
}

func TestAllocate_HighVIXWeights(t *testing.T) {
	t.Parallel()

	alloc := testPlan().Allocate(10000, fptr(21.0))
	require.Len(t, alloc, 4)
	assert.Equal(t, int64(2500), alloc[0].Amount)
	assert.Equal(t, int64(3250), alloc[1].Amount)
	assert.Equal(t, int64(1000), alloc[2].Amount)
	assert.Equal(t, int64(3250), alloc[3].Amount)
	assert.Equal(t, int64(10000), alloc.Total())
}

func TestAllocate_VIXBelowThresholdUsesNormal(t *testing.T) {
	t.Parallel()

	plan := testPlan()
	low := plan.Allocate(20000, fptr(15.0))
	none := plan.Allocate(20000, nil)
	assert.Equal(t, none, low, "vix below threshold must behave like no vix")

	// Threshold is strict: exactly 20.0 stays on normal weights.
	at := plan.Allocate(20000, fptr(20.0))
	assert.Equal(t, none, at)
}

func TestAllocate_RemainderGoesToFirstFund(t *testing.T) {
	t.Parallel()

	// 10001 * 0.25 floors to 2500 per fund, leaving 1 for the first fund.
	alloc := testPlan().Allocate(10001, nil)
	assert.Equal(t, int64(2501), alloc[0].Amount)
	assert.Equal(t, int64(2500), alloc[1].Amount)
	assert.Equal(t, int64(10001), alloc.Total())
}

func TestAllocate_SumInvariant(t *testing.T) {
	t.Parallel()

	plan := testPlan()
	amounts := []int64{0, 1, 3, 7, 99, 10000, 10001, 20000, 123457}
	vixes := []*float64{nil, fptr(15.0), fptr(25.0), fptr(99.9)}
	for _, amt := range amounts {
		for _, vix := range vixes {
			alloc := plan.Allocate(amt, vix)
			assert.Equal(t, amt, alloc.Total(), "amount=%d", amt)
		}
	}
}

func TestAllocate_ZeroAmount(t *testing.T) {
	t.Parallel()

	alloc := testPlan().Allocate(0, fptr(25.0))
	for _, e := range alloc {
		assert.Zero(t, e.Amount)
	}
}
