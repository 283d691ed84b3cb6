package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var ErrUserNotFound = errors.New("user not found")

const userSnapshotTTL = 60 * time.Second

// UserService serves user records with a short-lived Redis snapshot in front
// of Postgres. Progress writes go through ProgressService, which drops the
// snapshot so the next read sees the new state.
type UserService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		rdb:      rdb,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// GetByID returns the user, preferring the cached snapshot.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	key := config.CacheKey.UserSnapshotKey(id)
	if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var u model.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return &u, nil
		}
		s.rdb.Del(ctx, key)
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.cacheSnapshot(ctx, u)
	return u, nil
}

// GetBySerial looks a user up by barcode serial, always hitting Postgres.
func (s *UserService) GetBySerial(ctx context.Context, serial string) (*model.User, error) {
	u, err := s.userRepo.GetBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// InvalidateSnapshot drops the cached snapshot after a progress write.
func (s *UserService) InvalidateSnapshot(ctx context.Context, userID string) {
	if err := s.rdb.Del(ctx, config.CacheKey.UserSnapshotKey(userID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to drop user snapshot")
	}
}

func (s *UserService) cacheSnapshot(ctx context.Context, u *model.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	key := config.CacheKey.UserSnapshotKey(u.ID)
	if err := s.rdb.Set(ctx, key, raw, userSnapshotTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("failed to cache user snapshot")
	}
}
