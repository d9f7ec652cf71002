package recorder

import "CrashSentinel/internal/model"

// RunRecord captures the outcome of one scheduled run.
type RunRecord struct {
	Outcome       string // "FETCH_ERROR", "EOD", "NO_DATA", "DEPLOY", "EXHAUSTED", "HOLD"
	PercentMove   *float64
	Price         float64
	VIX           *float64
	DeployedCount int
}

// DeploymentRecord captures one crash-tranche deployment.
type DeploymentRecord struct {
	TrancheIndex  int
	Amount        int64
	VIX           *float64
	Allocation    model.Allocation
	DeployedCount int // count after the tranche flip
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordDeployment(rec *DeploymentRecord) error
	Close() error
}
