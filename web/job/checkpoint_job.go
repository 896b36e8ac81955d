// Package job holds the scheduled maintenance jobs run by the server's cron.
package job

import (
	"userpanel/database"
	"userpanel/logger"
)

// CheckpointJob flushes the SQLite WAL into the main database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
