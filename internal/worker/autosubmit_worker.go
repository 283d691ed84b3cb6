package worker

import (
	"context"
	"time"

	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/rs/zerolog"
)

const AutoSubmitSweepInterval = 1 * time.Second

// AutoSubmitWorker enforces exam deadlines server-side. Every sweep it walks
// the active-session set and force-submits attempts whose duration budget
// has elapsed or whose window has closed. Submission is idempotent, so a
// sweep racing a manual submit is harmless.
type AutoSubmitWorker struct {
	sessions *service.ExamSessionService
	store    service.SessionStore
	log      zerolog.Logger
}

func NewAutoSubmitWorker(sessions *service.ExamSessionService, store service.SessionStore, log zerolog.Logger) *AutoSubmitWorker {
	return &AutoSubmitWorker{
		sessions: sessions,
		store:    store,
		log:      log.With().Str("component", "autosubmit_worker").Logger(),
	}
}

func (w *AutoSubmitWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AutoSubmitWorker started")

	ticker := time.NewTicker(AutoSubmitSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("AutoSubmitWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AutoSubmitWorker) sweep(ctx context.Context) {
	refs, err := w.store.ActiveSessions(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to list active sessions")
		return
	}

	for _, ref := range refs {
		submitted, err := w.sessions.SubmitIfDue(ctx, ref.UserID, ref.CourseID)
		if err != nil {
			w.log.Error().Err(err).Str("user_id", ref.UserID).Int("course_id", ref.CourseID).
				Msg("forced submit failed")
			continue
		}
		if submitted {
			w.log.Info().Str("user_id", ref.UserID).Int("course_id", ref.CourseID).
				Msg("Exam force-submitted on deadline")
		}
	}
}
