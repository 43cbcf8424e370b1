package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/workout-tracker/internal/domain"
)

// dateLayout is the storage format for workout dates.
const dateLayout = "2006-01-02"

// WorkoutRepository implements domain.WorkoutRepository using SQLite.
type WorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new SQLite-backed WorkoutRepository.
func NewWorkoutRepository(db *DB) *WorkoutRepository {
	return &WorkoutRepository{db: db.SqlDB}
}

func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workouts (user_id, date, exercise, duration, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		workout.UserID, workout.Date.Format(dateLayout), workout.Exercise, workout.Duration, now,
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get workout id: %w", err)
	}

	workout.ID = id
	workout.CreatedAt = now
	return nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	w := &domain.Workout{}
	// The date column is declared DATE, so the driver hands it back as a
	// time value; scan it directly.
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, exercise, duration, created_at
		 FROM workouts WHERE id = ?`, id,
	).Scan(&w.ID, &w.UserID, &w.Date, &w.Exercise, &w.Duration, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query workout by id: %w", err)
	}
	return w, nil
}

// ListByOwner returns all workouts belonging to the given user in natural
// storage order.
func (r *WorkoutRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Workout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, exercise, duration, created_at
		 FROM workouts WHERE user_id = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Exercise, &w.Duration, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// Update replaces the date, exercise, and duration of an existing workout.
func (r *WorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE workouts SET date = ?, exercise = ?, duration = ? WHERE id = ?`,
		workout.Date.Format(dateLayout), workout.Exercise, workout.Duration, workout.ID,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TotalsByOwner returns the summed duration and row count of the given
// user's workouts. Zero rows yield (0, 0).
func (r *WorkoutRepository) TotalsByOwner(ctx context.Context, ownerID int64) (int64, int64, error) {
	var minutes, count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0), COUNT(*) FROM workouts WHERE user_id = ?`,
		ownerID,
	).Scan(&minutes, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate workouts: %w", err)
	}
	return minutes, count, nil
}
