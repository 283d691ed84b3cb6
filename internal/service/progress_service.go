package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/repository"
	"github.com/kashafa/tadreeb-backend/internal/stage"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ProgressSyncJob is one deferred progress write waiting in the retry queue.
type ProgressSyncJob struct {
	UserID   string `json:"userId"`
	CourseID int    `json:"courseId"`
	Score    int    `json:"score"`
}

// ProgressService owns every write to a user's progress. The stored stage is
// never trusted from a client; it is recomputed from the completed set on
// each write.
type ProgressService struct {
	userRepo *repository.UserRepository
	users    *UserService
	rdb      *redis.Client
	log      zerolog.Logger
}

func NewProgressService(userRepo *repository.UserRepository, users *UserService, rdb *redis.Client, log zerolog.Logger) *ProgressService {
	return &ProgressService{
		userRepo: userRepo,
		users:    users,
		rdb:      rdb,
		log:      log.With().Str("component", "progress_service").Logger(),
	}
}

// ApplyPatch merges the patch into the stored progress, recomputes the
// stage, persists, and returns the updated record.
func (s *ProgressService) ApplyPatch(ctx context.Context, userID string, req *model.UpdateProgressRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Progress = MergeProgress(user.Progress, req)
	user.CurrentStage = stage.For(len(user.Progress.CompletedExams))

	if err := s.userRepo.UpdateProgress(ctx, user); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	s.users.InvalidateSnapshot(ctx, userID)

	s.log.Info().Str("user_id", userID).
		Int("completed", len(user.Progress.CompletedExams)).
		Str("stage", user.CurrentStage.String()).
		Msg("Progress updated")
	return user, nil
}

// RecordPassedExam applies a pass to the user's progress. When the write
// fails the job lands on the retry queue and the write error is still
// returned, so callers can report the pass as only partially synced. The
// already-persisted exam result is never blocked on a progress write.
func (s *ProgressService) RecordPassedExam(ctx context.Context, userID string, courseID, score int) error {
	req := &model.UpdateProgressRequest{
		CompletedExams: []int{courseID},
		Scores:         []int{score},
	}
	if _, err := s.ApplyPatch(ctx, userID, req); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int("course_id", courseID).
			Msg("Progress write failed, queueing for retry")
		job := ProgressSyncJob{UserID: userID, CourseID: courseID, Score: score}
		if qerr := s.Enqueue(ctx, job); qerr != nil {
			s.log.Error().Err(qerr).Str("user_id", userID).Int("course_id", courseID).
				Msg("Retry enqueue failed, progress write needs manual replay")
		}
		return fmt.Errorf("record passed exam: %w", err)
	}
	return nil
}

// RecordSyncedPass applies one queued job. Unlike RecordPassedExam it
// surfaces the error so the caller decides whether to requeue.
func (s *ProgressService) RecordSyncedPass(ctx context.Context, job ProgressSyncJob) error {
	req := &model.UpdateProgressRequest{
		CompletedExams: []int{job.CourseID},
		Scores:         []int{job.Score},
	}
	_, err := s.ApplyPatch(ctx, job.UserID, req)
	return err
}

// GetUser exposes the authoritative record for exam gating.
func (s *ProgressService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Enqueue pushes a sync job onto the retry queue.
func (s *ProgressService) Enqueue(ctx context.Context, job ProgressSyncJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal sync job: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.ProgressSyncQueueKey(), raw).Err(); err != nil {
		return fmt.Errorf("enqueue sync job: %w", err)
	}
	return nil
}

// MergeProgress combines a patch with stored progress. The course lists are
// sets: merged, de-duplicated, and sorted ascending. Scores are an
// append-only attempt log.
func MergeProgress(current model.Progress, req *model.UpdateProgressRequest) model.Progress {
	merged := model.Progress{
		OpenedCourses:  mergeSet(current.OpenedCourses, req.OpenedCourses),
		CompletedExams: mergeSet(current.CompletedExams, req.CompletedExams),
		Scores:         append(append([]int{}, current.Scores...), req.Scores...),
	}
	return merged
}

func mergeSet(current, patch []int) []int {
	seen := make(map[int]struct{}, len(current)+len(patch))
	out := make([]int, 0, len(current)+len(patch))
	for _, lists := range [][]int{current, patch} {
		for _, v := range lists {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
