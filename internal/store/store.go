package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aalto-speech/fi-parliament-tools/internal/stats"
)

// Store wraps a gorm connection to the run/session-statistics database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at path and runs
// AutoMigrate for the Run and SessionStat models.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Run{}, &SessionStat{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StartRun records a new run and returns its generated ID.
func (s *Store) StartRun(workers, total int) (string, error) {
	run := Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		Status:     RunRunning,
		Workers:    workers,
		TotalCount: total,
	}
	if err := s.db.Create(&run).Error; err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return run.ID, nil
}

// RecordSession appends one session's result to a run, updating the run's
// running counters. A non-empty sessionErr marks the session as failed
// without aborting the run.
func (s *Store) RecordSession(runID string, row stats.Row, sessionErr error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		rec := SessionStat{
			RunID:            runID,
			Session:          row.Session,
			LengthSeconds:    row.Length.Seconds(),
			Statements:       row.Statements,
			FailedStatements: row.FailedStatements,
			Segments:         row.Segments,
			DroppedSegments:  row.DroppedSegments,
			FailedSegments:   row.FailedSegments,
			MultipleSpeakers: row.MultipleSpeakers,
			Swedish:          row.Swedish,
			SegmentsLenSec:   row.SegmentsLen.Seconds(),
			DroppedLenSec:    row.DroppedLen.Seconds(),
			CreatedAt:        time.Now(),
		}
		if sessionErr != nil {
			rec.Error = sessionErr.Error()
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("record session %s: %w", row.Session, err)
		}

		updates := map[string]any{"done_count": gorm.Expr("done_count + 1")}
		if sessionErr != nil {
			updates["failed_count"] = gorm.Expr("failed_count + 1")
		}
		if err := tx.Model(&Run{}).Where("id = ?", runID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update run %s: %w", runID, err)
		}
		return nil
	})
}

// FinishRun marks a run complete (or failed, if runErr is non-nil).
func (s *Store) FinishRun(runID string, runErr error) error {
	now := time.Now()
	status := RunCompleted
	errMsg := ""
	if runErr != nil {
		status = RunFailed
		errMsg = runErr.Error()
	}
	err := s.db.Model(&Run{}).Where("id = ?", runID).Updates(map[string]any{
		"finished_at": &now,
		"status":      status,
		"error":       errMsg,
	}).Error
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	return nil
}

// ListRuns returns every recorded run, most recent first.
func (s *Store) ListRuns() ([]Run, error) {
	var runs []Run
	if err := s.db.Order("started_at desc").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a single run by id, or gorm.ErrRecordNotFound.
func (s *Store) GetRun(id string) (Run, error) {
	var run Run
	if err := s.db.First(&run, "id = ?", id).Error; err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListSessionStats returns every session row recorded for a run, in
// insertion order.
func (s *Store) ListSessionStats(runID string) ([]SessionStat, error) {
	var rows []SessionStat
	if err := s.db.Where("run_id = ?", runID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list session stats for run %s: %w", runID, err)
	}
	return rows, nil
}
