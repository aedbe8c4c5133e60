// Package api serves the signed-in user's tasks, agenda, subjects and
// weekly schedule over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudai/estudai/internal/api/middleware"
	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/storage"
)

// Backend is the part of the remote store the API reads and writes.
type Backend interface {
	storage.AuthRemote
	storage.TaskRemote
	storage.SubjectRemote
	storage.ScheduleRemote
}

type Options struct {
	Addr               string
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
	Location           *time.Location
	Now                func() time.Time
}

type Server struct {
	e    *echo.Echo
	opts Options
}

func New(backend Backend, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = constants.DefaultAPIAddr
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	Register(e, NewHandler(backend, opts.Location, opts.Now), backend, opts.RateLimitPerMinute)
	return &Server{e: e, opts: opts}
}

// Register mounts every route on e.
func Register(e *echo.Echo, h *Handler, auth storage.AuthRemote, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", func(c echo.Context) error {
		return respond(c, http.StatusOK, echo.Map{"version": constants.Version})
	})

	g := e.Group("", middleware.RequireSession(auth))
	g.GET("/tasks", h.ListTasks)
	g.POST("/tasks", h.CreateTask)
	g.PATCH("/tasks/:id", h.UpdateTask)
	g.DELETE("/tasks/:id", h.DeleteTask)
	g.POST("/tasks/:id/toggle", h.ToggleTask)
	g.POST("/tasks/batch-delete", h.BatchDelete)
	g.POST("/tasks/batch-update", h.BatchUpdate)
	g.GET("/agenda/:year/:month", h.Agenda)
	g.GET("/subjects", h.ListSubjects)
	g.GET("/schedule", h.ListSchedule)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.opts.Addr)
		if err := s.e.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server shut down gracefully")
	return nil
}
