package model

// CrashState tracks which crash tranches have been deployed.
// Deployed has a fixed length equal to the configured tranche count and
// values only ever flip from false to true.
type CrashState struct {
	Deployed []bool `json:"deployed"`
}

// NewCrashState returns a fresh state with no tranches deployed.
func NewCrashState(tranches int) *CrashState {
	return &CrashState{Deployed: make([]bool, tranches)}
}

// DeployedCount returns how many tranches have been deployed so far.
func (s *CrashState) DeployedCount() int {
	n := 0
	for _, d := range s.Deployed {
		if d {
			n++
		}
	}
	return n
}

// NextUndeployed returns the lowest undeployed tranche index.
// ok is false when every tranche has already been deployed.
func (s *CrashState) NextUndeployed() (idx int, ok bool) {
	for i, d := range s.Deployed {
		if !d {
			return i, true
		}
	}
	return 0, false
}
