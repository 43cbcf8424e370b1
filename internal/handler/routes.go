package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/msomdec/workout-tracker/internal/service"
	"github.com/msomdec/workout-tracker/internal/session"
	"github.com/msomdec/workout-tracker/internal/view"
)

// NewRouter assembles the gin engine: templates, session store, middleware,
// and all application routes.
func NewRouter(auth *service.AuthService, workouts *service.WorkoutService, sessionSecret string, cookieSecure bool) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(SecurityHeaders())
	engine.Use(session.Middleware(sessionSecret, cookieSecure))

	tpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tpl)

	// Burst of 5 login attempts per client IP, refilling one every 2s.
	loginLimiter := service.NewTokenBucket(0.5, 5)

	authHandler := NewAuthHandler(auth, loginLimiter)
	workoutHandler := NewWorkoutHandler(workouts)

	engine.GET("/healthz", HandleHealthz)
	engine.GET("/", authHandler.HandleHome)
	engine.POST("/register", authHandler.HandleRegister)
	engine.POST("/login", authHandler.HandleLogin)
	// Logout works with or without a live session.
	engine.GET("/logout", authHandler.HandleLogout)

	protected := engine.Group("", RequireAuth())
	protected.GET("/dashboard", authHandler.HandleDashboard)
	protected.GET("/track_workouts", workoutHandler.HandleTrackForm)
	protected.POST("/track_workouts", workoutHandler.HandleTrack)
	protected.GET("/workouts", workoutHandler.HandleList)
	protected.GET("/add_workout", workoutHandler.HandleAddForm)
	protected.POST("/add_workout", workoutHandler.HandleAdd)
	protected.GET("/edit_workout/:id", workoutHandler.HandleEditForm)
	protected.POST("/edit_workout/:id", workoutHandler.HandleEdit)
	protected.POST("/delete_workout/:id", workoutHandler.HandleDelete)
	protected.GET("/view_progress", workoutHandler.HandleProgress)

	return engine, nil
}
