package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"github.com/kashafa/tadreeb-backend/internal/database"
	"github.com/kashafa/tadreeb-backend/internal/logger"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/repository"
	"github.com/kashafa/tadreeb-backend/internal/stage"
)

// Seeds a demo troop. Serials follow the printed membership-card format:
// six digits, zero padded.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	names := []string{
		"أحمد خالد", "محمد سمير", "يوسف عادل", "كريم حسن", "عمر فؤاد",
		"مريم سامي", "سارة نبيل", "ليلى عماد", "نور هاني", "هدى فريد",
		"طارق منير", "زياد رامي", "سامي وائل", "هاني ماجد", "رامي عزت",
		"دينا صبري", "منى شريف", "رنا عصام", "سلمى أشرف", "ياسمين جمال",
	}

	fmt.Printf("=== Seeding %d Users ===\n", len(names))

	successCount := 0
	for i, name := range names {
		user := &model.User{
			ID:           uuid.New().String(),
			Name:         name,
			Serial:       fmt.Sprintf("%06d", 100001+i),
			CurrentStage: stage.For(0),
		}

		err := userRepo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateSerial) {
				fmt.Printf("Skipping %s (serial %s): already exists\n", user.Name, user.Serial)
				continue
			}
			fmt.Printf("Error creating user %s (serial %s): %v\n", user.Name, user.Serial, err)
			continue
		}
		successCount++
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d users.\n", successCount, len(names))
}
