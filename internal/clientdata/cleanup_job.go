package clientdata

import (
	"fmt"

	"github.com/rs/zerolog"
)

// CleanupJob removes expired cache entries on a schedule.
type CleanupJob struct {
	repo *Repository
	log  zerolog.Logger
}

// NewCleanupJob creates a new cache cleanup job.
func NewCleanupJob(repo *Repository, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		log:  log.With().Str("component", "cache_cleanup_job").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *CleanupJob) Name() string {
	return "cache_cleanup"
}

// Run deletes expired entries from all cache tables.
func (j *CleanupJob) Run() error {
	deleted, err := j.repo.DeleteAllExpired()
	if err != nil {
		return fmt.Errorf("cache cleanup failed: %w", err)
	}

	j.log.Info().
		Int64("deleted", deleted).
		Msg("Cache cleanup complete")

	return nil
}
