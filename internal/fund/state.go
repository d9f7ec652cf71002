package fund

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"CrashSentinel/internal/model"
)

// LoadState reads the crash state from a JSON file. On a missing file or any
// parse failure it returns a fresh all-undeployed state instead of an error:
// a corrupted state file must never block a run. Worst case is re-deploying
// a tranche, which the operator can reconcile by hand.
func LoadState(filePath string, tranches int) *model.CrashState {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", filePath).Msg("state file unreadable, starting fresh")
		}
		return model.NewCrashState(tranches)
	}

	var state model.CrashState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn().Err(err).Str("file", filePath).Msg("state file corrupt, starting fresh")
		return model.NewCrashState(tranches)
	}

	// The tranche count is fixed configuration; a persisted record of another
	// length is truncated or padded to fit.
	if len(state.Deployed) != tranches {
		log.Warn().
			Int("got", len(state.Deployed)).
			Int("want", tranches).
			Msg("state file tranche count mismatch, normalizing")
		fixed := model.NewCrashState(tranches)
		copy(fixed.Deployed, state.Deployed)
		return fixed
	}
	return &state
}

// SaveState writes the crash state to a JSON file, overwriting any previous
// content. Called once at the end of every run whether or not anything changed.
func SaveState(filePath string, state *model.CrashState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
