package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msomdec/workout-tracker/internal/domain"
	"github.com/msomdec/workout-tracker/internal/service"
	"github.com/msomdec/workout-tracker/internal/session"
)

const dateLayout = "2006-01-02"

// WorkoutHandler handles workout CRUD and the progress page.
type WorkoutHandler struct {
	workouts *service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workouts *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// workoutForm reads and validates the shared date/exercise/duration form.
// On failure it flashes a notice, redirects back to formPath, and returns
// ok=false; the caller just returns.
func workoutForm(c *gin.Context, formPath string) (date time.Time, exercise string, duration int, ok bool) {
	dateStr := c.PostForm("date")
	exercise = c.PostForm("exercise")
	durationStr := c.PostForm("duration")

	fail := func(message string) {
		session.AddFlash(c, session.LevelDanger, message)
		c.Redirect(http.StatusSeeOther, formPath)
	}

	if dateStr == "" || exercise == "" || durationStr == "" {
		fail("All fields are required!")
		return
	}

	var err error
	if date, err = time.Parse(dateLayout, dateStr); err != nil {
		fail("Invalid date! Use the YYYY-MM-DD format.")
		return
	}

	// Any parseable integer is accepted, negative durations included.
	if duration, err = strconv.Atoi(durationStr); err != nil {
		fail("Duration must be a whole number of minutes!")
		return
	}

	return date, exercise, duration, true
}

// HandleTrackForm renders the track-workout form.
// GET /track_workouts
func (h *WorkoutHandler) HandleTrackForm(c *gin.Context) {
	render(c, "track_workouts.html", nil)
}

// HandleTrack creates a workout from the track form.
// POST /track_workouts
func (h *WorkoutHandler) HandleTrack(c *gin.Context) {
	h.create(c, "/track_workouts")
}

// HandleAddForm renders the add-workout form.
// GET /add_workout
func (h *WorkoutHandler) HandleAddForm(c *gin.Context) {
	render(c, "add_workout.html", nil)
}

// HandleAdd creates a workout from the add form.
// POST /add_workout
func (h *WorkoutHandler) HandleAdd(c *gin.Context) {
	h.create(c, "/add_workout")
}

func (h *WorkoutHandler) create(c *gin.Context, formPath string) {
	user, _ := session.CurrentUser(c)

	date, exercise, duration, ok := workoutForm(c, formPath)
	if !ok {
		return
	}

	if _, err := h.workouts.Track(c.Request.Context(), user.UserID, date, exercise, duration); err != nil {
		slog.Error("track workout", "user_id", user.UserID, "error", err)
		session.AddFlash(c, session.LevelDanger, "An unexpected error occurred. Please try again.")
		c.Redirect(http.StatusSeeOther, formPath)
		return
	}

	session.AddFlash(c, session.LevelSuccess, "Workout added successfully!")
	c.Redirect(http.StatusSeeOther, "/workouts")
}

// HandleList shows all workouts owned by the logged-in user.
// GET /workouts
func (h *WorkoutHandler) HandleList(c *gin.Context) {
	user, _ := session.CurrentUser(c)

	workouts, err := h.workouts.ListForOwner(c.Request.Context(), user.UserID)
	if err != nil {
		slog.Error("list workouts", "user_id", user.UserID, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	render(c, "view_workouts.html", gin.H{"workouts": workouts})
}

// HandleEditForm renders the edit form prefilled with the workout's fields.
// GET /edit_workout/:id
func (h *WorkoutHandler) HandleEditForm(c *gin.Context) {
	user, _ := session.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}

	workout, err := h.workouts.GetForOwner(c.Request.Context(), id, user.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		slog.Error("get workout", "id", id, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	render(c, "edit_workout.html", gin.H{"workout": workout})
}

// HandleEdit replaces all three fields of an owned workout.
// POST /edit_workout/:id
func (h *WorkoutHandler) HandleEdit(c *gin.Context) {
	user, _ := session.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}

	date, exercise, duration, ok := workoutForm(c, "/edit_workout/"+c.Param("id"))
	if !ok {
		return
	}

	if _, err := h.workouts.Update(c.Request.Context(), id, user.UserID, date, exercise, duration); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		slog.Error("update workout", "id", id, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	session.AddFlash(c, session.LevelSuccess, "Workout updated successfully!")
	c.Redirect(http.StatusSeeOther, "/workouts")
}

// HandleDelete removes an owned workout.
// POST /delete_workout/:id
func (h *WorkoutHandler) HandleDelete(c *gin.Context) {
	user, _ := session.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return
	}

	if err := h.workouts.Delete(c.Request.Context(), id, user.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		slog.Error("delete workout", "id", id, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	session.AddFlash(c, session.LevelSuccess, "Workout deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/workouts")
}

// HandleProgress shows aggregate totals for the logged-in user. The
// aggregate never errors out; a failed computation renders as zeros.
// GET /view_progress
func (h *WorkoutHandler) HandleProgress(c *gin.Context) {
	user, _ := session.CurrentUser(c)
	progress := h.workouts.Progress(c.Request.Context(), user.UserID)
	render(c, "view_progress.html", gin.H{"progress": progress})
}
