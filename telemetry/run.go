package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// RunInfo identifies one simulation run in logs and output files.
type RunInfo struct {
	ID        uuid.UUID `json:"id"`
	Seed      int64     `json:"seed"`
	StartedAt time.Time `json:"started_at"`
}

// NewRunInfo creates a run identity with a fresh random ID.
func NewRunInfo(seed int64) RunInfo {
	return RunInfo{
		ID:        uuid.New(),
		Seed:      seed,
		StartedAt: time.Now().UTC(),
	}
}
