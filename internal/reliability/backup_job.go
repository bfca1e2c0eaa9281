package reliability

import (
	"context"
	"time"
)

// BackupJob runs the backup service on a schedule.
type BackupJob struct {
	service *BackupService
}

// NewBackupJob creates a new backup job.
func NewBackupJob(service *BackupService) *BackupJob {
	return &BackupJob{service: service}
}

// Name returns the job name for scheduler logging.
func (j *BackupJob) Name() string {
	return "backup"
}

// Run creates and uploads a backup, then prunes old ones.
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if err := j.service.CreateAndUpload(ctx); err != nil {
		return err
	}
	return j.service.Prune(ctx)
}
