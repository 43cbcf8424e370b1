package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/workout-tracker/internal/domain"
)

// Progress summarises a user's training history.
type Progress struct {
	TotalMinutes  int64
	TotalWorkouts int64
}

// WorkoutService handles workout CRUD and aggregation, always scoped to
// the owning user.
type WorkoutService struct {
	workouts domain.WorkoutRepository
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(workouts domain.WorkoutRepository) *WorkoutService {
	return &WorkoutService{workouts: workouts}
}

// Track records a new workout for the given owner.
func (s *WorkoutService) Track(ctx context.Context, ownerID int64, date time.Time, exercise string, duration int) (*domain.Workout, error) {
	if exercise == "" {
		return nil, fmt.Errorf("%w: exercise is required", domain.ErrInvalidInput)
	}

	workout := &domain.Workout{
		UserID:   ownerID,
		Date:     date,
		Exercise: exercise,
		Duration: duration,
	}

	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	return workout, nil
}

// ListForOwner returns all workouts owned by the given user.
func (s *WorkoutService) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Workout, error) {
	return s.workouts.ListByOwner(ctx, ownerID)
}

// GetForOwner fetches a workout by id, restricted to the given owner.
// A workout belonging to another user is reported as not found, so ids
// cannot be probed across accounts.
func (s *WorkoutService) GetForOwner(ctx context.Context, id, ownerID int64) (*domain.Workout, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	return workout, nil
}

// Update replaces the date, exercise, and duration of an owned workout.
func (s *WorkoutService) Update(ctx context.Context, id, ownerID int64, date time.Time, exercise string, duration int) (*domain.Workout, error) {
	workout, err := s.GetForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	workout.Date = date
	workout.Exercise = exercise
	workout.Duration = duration

	if err := s.workouts.Update(ctx, workout); err != nil {
		return nil, err
	}

	return workout, nil
}

// Delete removes an owned workout. Deleting the same id twice fails with
// ErrNotFound the second time.
func (s *WorkoutService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := s.GetForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	return s.workouts.Delete(ctx, id)
}

// Progress computes the total minutes and workout count for the owner.
// A repository failure degrades to a zero-valued result instead of
// surfacing an error; the failure is logged and the page still renders.
func (s *WorkoutService) Progress(ctx context.Context, ownerID int64) Progress {
	minutes, count, err := s.workouts.TotalsByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("aggregate workout progress", "user_id", ownerID, "error", err)
		}
		return Progress{}
	}
	return Progress{TotalMinutes: minutes, TotalWorkouts: count}
}
