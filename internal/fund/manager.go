package fund

import (
	"fmt"
	"sync"

	"CrashSentinel/internal/model"
)

// Manager guards the crash-tranche state with concurrency safety.
// State is read once at construction and written back via Save; tranches
// only ever move from undeployed to deployed.
type Manager struct {
	mu       sync.Mutex
	state    *model.CrashState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, tranches int) *Manager {
	return &Manager{
		state:    LoadState(filePath, tranches),
		filePath: filePath,
	}
}

// State returns a copy of the current crash state.
func (m *Manager) State() model.CrashState {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := model.CrashState{Deployed: make([]bool, len(m.state.Deployed))}
	copy(cp.Deployed, m.state.Deployed)
	return cp
}

// TrancheCount returns the fixed number of tranches.
func (m *Manager) TrancheCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.Deployed)
}

// DeployedCount returns how many tranches have been deployed.
func (m *Manager) DeployedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.DeployedCount()
}

// NextUndeployed returns the lowest undeployed tranche index.
func (m *Manager) NextUndeployed() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.NextUndeployed()
}

// MarkDeployed flips tranche idx from undeployed to deployed.
// It refuses out-of-range indexes and never flips a tranche back.
func (m *Manager) MarkDeployed(idx int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx < 0 || idx >= len(m.state.Deployed) {
		return fmt.Errorf("tranche index %d out of range [0,%d)", idx, len(m.state.Deployed))
	}
	m.state.Deployed[idx] = true
	return nil
}

// Save persists the current state to disk unconditionally.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SaveState(m.filePath, m.state)
}
