package domain

import (
	"context"
	"time"
)

// Workout is a single logged training session. Duration is in minutes
// and may be any integer, negatives included; no range check lives here.
type Workout struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Exercise  string
	Duration  int
	CreatedAt time.Time
}

// WorkoutRepository defines persistence operations for workouts.
// All list/aggregate queries are scoped to an owner; a workout is only
// reachable through its owner's user ID.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *Workout) error
	GetByID(ctx context.Context, id int64) (*Workout, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Workout, error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, id int64) error
	TotalsByOwner(ctx context.Context, ownerID int64) (minutes int64, count int64, err error)
}
