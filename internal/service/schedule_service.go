package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ScheduleService holds the current exam window in memory and keeps it fresh
// from two sources: a Redis invalidation channel fired on admin updates and a
// periodic reload as a fallback when a publish is missed.
type ScheduleService struct {
	settings *SettingService
	rdb      *redis.Client
	log      zerolog.Logger
	now      func() time.Time

	mu     sync.RWMutex
	window *model.ExamWindow
}

func NewScheduleService(settings *SettingService, rdb *redis.Client, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		settings: settings,
		rdb:      rdb,
		log:      log.With().Str("component", "schedule_service").Logger(),
		now:      time.Now,
	}
}

// Reload fetches the schedule setting and swaps the cached window. A missing
// or malformed setting swaps in no window, which reads as closed.
func (s *ScheduleService) Reload(ctx context.Context) error {
	raw, err := s.settings.GetSettingByKey(ctx, model.SettingExamSchedule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.setWindow(nil)
			return nil
		}
		return err
	}
	s.applyRaw(raw)
	return nil
}

func (s *ScheduleService) applyRaw(raw string) {
	window, ok := model.ParseExamWindow([]byte(raw))
	if !ok {
		s.log.Warn().Str("raw", raw).Msg("Ignoring malformed exam schedule, exams stay closed")
	}
	s.setWindow(window)
}

func (s *ScheduleService) setWindow(w *model.ExamWindow) {
	s.mu.Lock()
	s.window = w
	s.mu.Unlock()
}

// Window returns the cached exam window, nil when none is configured.
func (s *ScheduleService) Window() *model.ExamWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// Mode returns the current gate state and seconds until the next transition.
func (s *ScheduleService) Mode() (model.WindowMode, int) {
	return s.Window().Mode(s.now())
}

// Run keeps the cached window fresh until ctx is cancelled. It blocks, so
// callers start it in its own goroutine after an initial Reload.
func (s *ScheduleService) Run(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, config.CacheKey.ScheduleChannel())
	defer sub.Close()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	s.log.Info().Msg("Schedule watcher started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Schedule watcher stopped")
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			s.applyRaw(msg.Payload)
			s.log.Info().Msg("Exam schedule updated from invalidation channel")
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				s.log.Warn().Err(err).Msg("Periodic schedule reload failed")
			}
		}
	}
}
