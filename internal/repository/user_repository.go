package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/stage"
)

var ErrDuplicateSerial = errors.New("user with this serial already exists")

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, serial, current_stage, opened_courses, completed_exams, scores`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var currentStage float64
	var opened, completed, scores []int32
	err := row.Scan(&u.ID, &u.Name, &u.Serial, &currentStage, &opened, &completed, &scores)
	if err != nil {
		return nil, err
	}
	st, err := stage.FromFloat(currentStage)
	if err != nil {
		st = stage.For(len(completed))
	}
	u.CurrentStage = st
	u.Progress.OpenedCourses = toInts(opened)
	u.Progress.CompletedExams = toInts(completed)
	u.Progress.Scores = toInts(scores)
	return u, nil
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetBySerial retrieves a user by their unique barcode serial.
func (r *UserRepository) GetBySerial(ctx context.Context, serial string) (*model.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE serial = $1`, serial)
	return scanUser(row)
}

// UpdateProgress persists the merged progress lists and the recomputed stage
// in one statement.
func (r *UserRepository) UpdateProgress(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET current_stage = $1, opened_courses = $2, completed_exams = $3, scores = $4,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		u.CurrentStage.Float(),
		toInt32s(u.Progress.OpenedCourses),
		toInt32s(u.Progress.CompletedExams),
		toInt32s(u.Progress.Scores),
		u.ID,
	)
	return err
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, serial, current_stage, opened_courses, completed_exams, scores)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Serial,
		u.CurrentStage.Float(),
		toInt32s(u.Progress.OpenedCourses),
		toInt32s(u.Progress.CompletedExams),
		toInt32s(u.Progress.Scores),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSerial
		}
		return err
	}
	return nil
}

// List retrieves all users ordered by name, for the provisioning tools.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
