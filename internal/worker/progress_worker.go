package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ProgressPollTimeout = 1 * time.Second
	ProgressRetryDelay  = 5 * time.Second
)

// ProgressWorker drains the progress retry queue. Jobs land here when a
// progress write fails right after a passed exam; the pass itself is already
// durable, so the only goal is eventual convergence of the user record.
type ProgressWorker struct {
	progress *service.ProgressService
	rdb      *redis.Client
	log      zerolog.Logger
}

func NewProgressWorker(progress *service.ProgressService, rdb *redis.Client, log zerolog.Logger) *ProgressWorker {
	return &ProgressWorker{
		progress: progress,
		rdb:      rdb,
		log:      log.With().Str("component", "progress_worker").Logger(),
	}
}

func (w *ProgressWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ProgressWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ProgressWorker stopped")
			return

		default:
			item, err := w.rdb.BLPop(ctx, ProgressPollTimeout, config.WorkerKey.ProgressSyncQueueKey()).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var job service.ProgressSyncJob
			if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload, dropping job")
				continue
			}

			w.apply(ctx, job)
		}
	}
}

func (w *ProgressWorker) apply(ctx context.Context, job service.ProgressSyncJob) {
	err := w.progress.RecordSyncedPass(ctx, job)
	if err == nil {
		w.log.Info().Str("user_id", job.UserID).Int("course_id", job.CourseID).
			Msg("Deferred progress write applied")
		return
	}

	w.log.Warn().Err(err).Str("user_id", job.UserID).Int("course_id", job.CourseID).
		Msg("Deferred progress write failed, requeueing")

	// Back off before the job becomes visible again so a down database is
	// not hammered in a tight loop.
	select {
	case <-ctx.Done():
	case <-time.After(ProgressRetryDelay):
	}
	if err := w.progress.Enqueue(context.Background(), job); err != nil {
		w.log.Error().Err(err).Str("user_id", job.UserID).Int("course_id", job.CourseID).
			Msg("Requeue failed, job lost")
	}
}
