package strategy

import (
	"CrashSentinel/internal/calculator"
	"CrashSentinel/internal/model"
)

// Decision is the outcome of evaluating one market snapshot.
type Decision string

const (
	// DecisionEOD means the end-of-day summary should be sent.
	DecisionEOD Decision = "EOD"
	// DecisionNoData means the snapshot carried no percentage move.
	DecisionNoData Decision = "NO_DATA"
	// DecisionDeploy means a crash tranche should be deployed.
	DecisionDeploy Decision = "DEPLOY"
	// DecisionExhausted means a crash fired but all tranches are spent.
	DecisionExhausted Decision = "EXHAUSTED"
	// DecisionHold means nothing triggered.
	DecisionHold Decision = "HOLD"
)

// Evaluation is the full result of one decision pass, including the
// allocation to act on when Decision is DecisionDeploy.
type Evaluation struct {
	Decision     Decision
	TrancheIndex int
	Amount       int64
	Allocation   model.Allocation
}

// Engine evaluates snapshots against the crash-deployment rules.
// All fields are fixed configuration; Engine never mutates state.
type Engine struct {
	Plan       calculator.Plan
	Sequence   []int64 // rupee amount per tranche, consumed in order
	TriggerPct float64 // crash trigger, e.g. -3.0
}

// Evaluate runs the decision tree in strict order: EOD wins over everything,
// then missing data, then the crash trigger. The crash branch picks the
// lowest undeployed tranche but does not flip it; the caller owns mutation.
func (e *Engine) Evaluate(snap *model.MarketSnapshot, state *model.CrashState, eod bool) *Evaluation {
	if eod {
		return &Evaluation{Decision: DecisionEOD}
	}
	if snap.PercentMove == nil {
		return &Evaluation{Decision: DecisionNoData}
	}
	if *snap.PercentMove > e.TriggerPct {
		return &Evaluation{Decision: DecisionHold}
	}

	idx, ok := state.NextUndeployed()
	if !ok {
		return &Evaluation{Decision: DecisionExhausted}
	}
	amount := e.Sequence[idx]
	return &Evaluation{
		Decision:     DecisionDeploy,
		TrancheIndex: idx,
		Amount:       amount,
		Allocation:   e.Plan.Allocate(amount, snap.VIX),
	}
}
