// Package store persists driver run history and per-session statistics to
// SQLite via gorm, supplementing the flat statistics CSV with a queryable
// history an operator (or internal/api) can inspect without re-parsing log
// files.
package store

import "time"

// RunStatus is the lifecycle state of one driver invocation.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is one invocation of the postprocessing driver across a batch of
// sessions.
type Run struct {
	ID          string `gorm:"primaryKey"`
	StartedAt   time.Time
	FinishedAt  *time.Time
	Status      RunStatus
	Workers     int
	TotalCount  int
	DoneCount   int
	FailedCount int
	Error       string

	Sessions []SessionStat `gorm:"foreignKey:RunID"`
}

// SessionStat is one session's statistics row, attached to the Run that
// produced it. The numeric fields mirror stats.Row; durations are stored
// in whole seconds since that is the CSV's own precision.
type SessionStat struct {
	ID               uint `gorm:"primaryKey"`
	RunID            string
	Session          string
	LengthSeconds    float64
	Statements       int
	FailedStatements int
	Segments         int
	DroppedSegments  int
	FailedSegments   int
	MultipleSpeakers int
	Swedish          int
	SegmentsLenSec   float64
	DroppedLenSec    float64
	Error            string
	CreatedAt        time.Time
}
