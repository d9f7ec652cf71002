package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CrashSentinel/internal/calculator"
	"CrashSentinel/internal/model"
)

func testEngine() *Engine {
	return &Engine{
		Plan: calculator.Plan{
			Funds:          []string{"A", "B", "C", "D"},
			NormalWeights:  []float64{0.25, 0.25, 0.25, 0.25},
			HighVolWeights: []float64{0.25, 0.325, 0.10, 0.325},
			VolThreshold:   20.0,
		},
		Sequence:   []int64{20000, 20000, 10000, 20000, 20000, 10000},
		TriggerPct: -3.0,
	}
}

func snapshot(pct float64, vix *float64) *model.MarketSnapshot {
	return &model.MarketSnapshot{PercentMove: &pct, Price: 24000, VIX: vix}
}

func fptr(v float64) *float64 { return &v }

func TestEvaluate_CrashDeploysFirstTranche(t *testing.T) {
	t.Parallel()

	ev := testEngine().Evaluate(snapshot(-3.0, nil), model.NewCrashState(6), false)
	require.Equal(t, DecisionDeploy, ev.Decision)
	assert.Equal(t, 0, ev.TrancheIndex)
	assert.Equal(t, int64(20000), ev.Amount)
	assert.Equal(t, int64(20000), ev.Allocation.Total())
	assert.Equal(t, int64(5000), ev.Allocation.AmountFor("C"))
}

func TestEvaluate_TrancheOrderFollowsState(t *testing.T) {
	t.Parallel()

	state := model.NewCrashState(6)
	state.Deployed[0] = true
	state.Deployed[1] = true

	ev := testEngine().Evaluate(snapshot(-4.2, nil), state, false)
	require.Equal(t, DecisionDeploy, ev.Decision)
	assert.Equal(t, 2, ev.TrancheIndex)
	assert.Equal(t, int64(10000), ev.Amount, "third tranche is the smaller one")
}

func TestEvaluate_HighVIXShiftsAllocation(t *testing.T) {
	t.Parallel()

	ev := testEngine().Evaluate(snapshot(-3.5, fptr(25.0)), model.NewCrashState(6), false)
	require.Equal(t, DecisionDeploy, ev.Decision)
	assert.Equal(t, int64(2000), ev.Allocation.AmountFor("C"), "midcap cut to 10% above threshold")
}

func TestEvaluate_AllTranchesExhausted(t *testing.T) {
	t.Parallel()

	state := model.NewCrashState(6)
	for i := range state.Deployed {
		state.Deployed[i] = true
	}
	ev := testEngine().Evaluate(snapshot(-5.0, nil), state, false)
	assert.Equal(t, DecisionExhausted, ev.Decision)
}

func TestEvaluate_EODWinsOverCrash(t *testing.T) {
	t.Parallel()

	ev := testEngine().Evaluate(snapshot(-5.0, nil), model.NewCrashState(6), true)
	assert.Equal(t, DecisionEOD, ev.Decision)
}

func TestEvaluate_NoDataBeforeCrashCheck(t *testing.T) {
	t.Parallel()

	snap := &model.MarketSnapshot{Price: 24000}
	ev := testEngine().Evaluate(snap, model.NewCrashState(6), false)
	assert.Equal(t, DecisionNoData, ev.Decision)
}

func TestEvaluate_TriggerBoundary(t *testing.T) {
	t.Parallel()

	e := testEngine()
	tests := []struct {
		pct  float64
		want Decision
	}{
		{-2.99, DecisionHold},
		{-3.0, DecisionDeploy},
		{-3.01, DecisionDeploy},
		{0.0, DecisionHold},
		{2.5, DecisionHold},
	}
	for _, tt := range tests {
		ev := e.Evaluate(snapshot(tt.pct, nil), model.NewCrashState(6), false)
		assert.Equal(t, tt.want, ev.Decision, "pct=%.2f", tt.pct)
	}
}
