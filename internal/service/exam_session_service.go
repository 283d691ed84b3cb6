package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kashafa/tadreeb-backend/internal/catalog"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/rs/zerolog"
)

// Exam gating errors. Window violations carry distinct messages; cooldown
// and already-passed starts are silent no-ops instead.
var (
	ErrExamNotFound   = errors.New("no exam offered for this course")
	ErrCourseLocked   = errors.New("course not unlocked at current stage")
	ErrWindowNotOpen  = errors.New("exam window has not opened yet")
	ErrWindowClosed   = errors.New("exam window has closed")
	ErrExamNotStarted = errors.New("exam not in progress")
)

// SessionStore persists exam attempt state.
type SessionStore interface {
	Load(ctx context.Context, userID string, courseID int) (*model.ExamSession, error)
	Save(ctx context.Context, session *model.ExamSession) error
	MarkActive(ctx context.Context, userID string, courseID int) error
	ClearActive(ctx context.Context, userID string, courseID int) error
	ActiveSessions(ctx context.Context) ([]model.SessionRef, error)
}

// WindowSource supplies the current exam window.
type WindowSource interface {
	Window() *model.ExamWindow
}

// ProgressSyncer pushes passed exams into the authoritative user record.
type ProgressSyncer interface {
	RecordPassedExam(ctx context.Context, userID string, courseID, score int) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// ExamSessionService runs the exam attempt state machine. All timing
// decisions use the injected clock so deadline behavior is testable.
type ExamSessionService struct {
	store    SessionStore
	windows  WindowSource
	progress ProgressSyncer
	catalog  *catalog.Catalog
	log      zerolog.Logger
	now      func() time.Time
}

func NewExamSessionService(
	store SessionStore,
	windows WindowSource,
	progress ProgressSyncer,
	cat *catalog.Catalog,
	log zerolog.Logger,
) *ExamSessionService {
	return &ExamSessionService{
		store:    store,
		windows:  windows,
		progress: progress,
		catalog:  cat,
		log:      log.With().Str("component", "exam_session_service").Logger(),
		now:      time.Now,
	}
}

// load returns the stored session with an expired cooldown already dropped,
// or a fresh NotStarted session when none exists.
func (s *ExamSessionService) load(ctx context.Context, userID string, courseID int) (*model.ExamSession, error) {
	session, err := s.store.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return model.NewExamSession(userID, courseID), nil
	}
	if session.CooldownUntil != nil && !session.CooldownActive(s.now()) {
		session.CooldownUntil = nil
		session.Result = nil
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	if session.Answers == nil {
		session.Answers = make(map[int]int)
	}
	return session, nil
}

// State returns the session as it currently stands, never mutating gate
// conditions other than cooldown expiry.
func (s *ExamSessionService) State(ctx context.Context, userID string, courseID int) (*model.ExamSession, error) {
	if _, ok := s.catalog.Exam(courseID); !ok {
		return nil, ErrExamNotFound
	}
	return s.load(ctx, userID, courseID)
}

// Start begins a new attempt. Window violations dominate every other gate
// and are rejected with distinct errors; inside an open window an active
// cooldown or an already-passed exam leaves the stored session untouched and
// returns it unchanged.
func (s *ExamSessionService) Start(ctx context.Context, userID string, courseID int) (*model.ExamSession, error) {
	if _, ok := s.catalog.Exam(courseID); !ok {
		return nil, ErrExamNotFound
	}

	user, err := s.progress.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CurrentStage.IsCourseUnlocked(courseID) {
		return nil, ErrCourseLocked
	}

	switch mode, _ := s.windows.Window().Mode(s.now()); mode {
	case model.WindowBeforeOpen:
		return nil, ErrWindowNotOpen
	case model.WindowClosed:
		return nil, ErrWindowClosed
	}

	session, err := s.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if user.HasPassed(courseID) || session.Status() == model.SessionStatusPassed {
		return session, nil
	}
	if session.CooldownActive(s.now()) {
		return session, nil
	}

	startedAt := s.now()
	session.StartedAt = &startedAt
	session.Answers = make(map[int]int)
	session.PageIndex = 0
	session.Result = nil
	session.CooldownUntil = nil

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	if err := s.store.MarkActive(ctx, userID, courseID); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Int("course_id", courseID).Msg("Exam started")
	return session, nil
}

// Answer upserts one selected option. No correctness feedback is given
// before scoring.
func (s *ExamSessionService) Answer(ctx context.Context, userID string, courseID, questionIndex, optionIndex int) (*model.ExamSession, error) {
	def, ok := s.catalog.Exam(courseID)
	if !ok {
		return nil, ErrExamNotFound
	}

	session, err := s.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if session.Status() != model.SessionStatusInProgress {
		return nil, ErrExamNotStarted
	}
	if questionIndex < 0 || questionIndex >= len(def.Questions) {
		return nil, fmt.Errorf("question index %d out of range", questionIndex)
	}
	if optionIndex < 0 || optionIndex >= len(def.Questions[questionIndex].Options) {
		return nil, fmt.Errorf("option index %d out of range", optionIndex)
	}

	session.Answers[questionIndex] = optionIndex
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ChangePage moves the page cursor by direction, clamped to the paper's
// page range. The cursor has no scoring effect.
func (s *ExamSessionService) ChangePage(ctx context.Context, userID string, courseID, direction int) (*model.ExamSession, error) {
	def, ok := s.catalog.Exam(courseID)
	if !ok {
		return nil, ErrExamNotFound
	}

	session, err := s.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if session.Status() != model.SessionStatusInProgress {
		return nil, ErrExamNotStarted
	}

	next := session.PageIndex + direction
	if next < 0 {
		next = 0
	}
	if max := def.PageCount() - 1; next > max {
		next = max
	}
	session.PageIndex = next

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit scores the attempt. It is idempotent: a session that already holds
// a result is returned unchanged. Unanswered questions count as wrong. The
// second return value reports a pass whose progress write failed and now
// waits on the retry queue; callers surface it as a partial-success warning.
func (s *ExamSessionService) Submit(ctx context.Context, userID string, courseID int) (*model.ExamSession, bool, error) {
	def, ok := s.catalog.Exam(courseID)
	if !ok {
		return nil, false, ErrExamNotFound
	}

	session, err := s.load(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if session.Result != nil {
		return session, false, nil
	}
	if session.StartedAt == nil {
		return nil, false, ErrExamNotStarted
	}

	score := 0
	for i, q := range def.Questions {
		if selected, answered := session.Answers[i]; answered && selected == q.CorrectIndex {
			score++
		}
	}
	passed := score >= def.PassScore

	session.Result = &model.ExamResult{Score: score, Passed: passed}
	session.StartedAt = nil
	if !passed {
		until := s.now().Add(time.Duration(def.CooldownMinutes) * time.Minute)
		session.CooldownUntil = &until
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, false, err
	}
	if err := s.store.ClearActive(ctx, userID, courseID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Int("course_id", courseID).
			Msg("failed to clear active session marker")
	}

	s.log.Info().Str("user_id", userID).Int("course_id", courseID).
		Int("score", score).Bool("passed", passed).Msg("Exam submitted")

	syncPending := false
	if passed {
		if err := s.progress.RecordPassedExam(ctx, userID, courseID, score); err != nil {
			syncPending = true
			s.log.Error().Err(err).Str("user_id", userID).Int("course_id", courseID).
				Msg("progress sync failed after pass")
		}
	}
	return session, syncPending, nil
}

// SubmitIfDue force-submits a running attempt whose duration budget has
// elapsed or whose window has closed. It reports whether a submit happened.
func (s *ExamSessionService) SubmitIfDue(ctx context.Context, userID string, courseID int) (bool, error) {
	def, ok := s.catalog.Exam(courseID)
	if !ok {
		// The course vanished from the catalog; drop the marker.
		s.store.ClearActive(ctx, userID, courseID)
		return false, nil
	}

	session, err := s.load(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	if session.Status() != model.SessionStatusInProgress {
		if err := s.store.ClearActive(ctx, userID, courseID); err != nil {
			return false, err
		}
		return false, nil
	}

	now := s.now()
	deadline := session.StartedAt.Add(time.Duration(def.DurationMinutes) * time.Minute)
	due := !now.Before(deadline)

	if !due {
		if mode, _ := s.windows.Window().Mode(now); mode == model.WindowClosed {
			due = true
		}
	}
	if !due {
		return false, nil
	}

	if _, _, err := s.Submit(ctx, userID, courseID); err != nil {
		return false, err
	}
	return true, nil
}
