package calculator

import (
	"math"

	"CrashSentinel/internal/model"
)

// Plan holds the immutable allocation rules for one deployment strategy.
// NormalWeights applies in calm markets; HighVolWeights applies when the
// volatility reading exceeds VolThreshold. Both vectors sum to 1.0 and have
// one entry per fund.
type Plan struct {
	Funds          []string
	NormalWeights  []float64
	HighVolWeights []float64
	VolThreshold   float64
}

// Allocate splits amount across the plan's funds. Each fund gets
// floor(amount*weight); the rounding remainder is added in full to the first
// fund so the result always sums to amount exactly. The over-allocation of
// the first fund is a deliberate policy, not an error.
// amount must be >= 0; vix may be nil when no volatility reading exists.
func (p Plan) Allocate(amount int64, vix *float64) model.Allocation {
	weights := p.NormalWeights
	if vix != nil && *vix > p.VolThreshold {
		weights = p.HighVolWeights
	}

	alloc := make(model.Allocation, len(p.Funds))
	var sum int64
	for i, w := range weights {
		v := int64(math.Floor(float64(amount) * w))
		alloc[i] = model.FundAmount{Fund: p.Funds[i], Amount: v}
		sum += v
	}
	if len(alloc) > 0 {
		alloc[0].Amount += amount - sum
	}
	return alloc
}
