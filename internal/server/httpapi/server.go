// Package httpapi exposes the JSON HTTP API: registration, login, profile
// management, the course catalog, quiz questions, course material links and
// progress tracking.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aturkov/scorekeep/internal/logging"
	"github.com/aturkov/scorekeep/internal/server/catalog"
	"github.com/aturkov/scorekeep/internal/server/models"
	"github.com/aturkov/scorekeep/internal/server/services"
)

// AccountProvider is the slice of the account service the API uses.
type AccountProvider interface {
	Register(ctx context.Context, fullName, email, nickname, password string) (*models.User, error)
	Login(ctx context.Context, nickname, password string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd services.ProfileUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ProgressProvider is the slice of the progress service the API uses.
type ProgressProvider interface {
	SubmitScore(ctx context.Context, userID, subject string, score int64) (*models.ProgressRecord, error)
	GetProgress(ctx context.Context, userID, subject string) (*models.ProgressRecord, error)
	ListProgress(ctx context.Context, userID string) ([]*models.ProgressRecord, error)
}

// MaterialProvider hands out download URLs for course PDFs.
type MaterialProvider interface {
	GetDownloadURL(ctx context.Context, subject string) (string, error)
}

type Server struct {
	address   string
	accounts  AccountProvider
	progress  ProgressProvider
	materials MaterialProvider
	catalog   *catalog.Catalog
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(address string, logger logging.Logger, accounts AccountProvider,
	progress ProgressProvider, materials MaterialProvider, cat *catalog.Catalog, secretKey string) *Server {
	return &Server{
		address:   address,
		accounts:  accounts,
		progress:  progress,
		materials: materials,
		catalog:   cat,
		logger:    logger.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
	}
}

// Router assembles the route table. Split out from Run so tests can exercise
// the full routing/middleware stack with httptest.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)
	r.Get("/api/courses", s.handleListCourses)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/api/me", s.handleGetMe)
		r.Patch("/api/me", s.handleUpdateMe)
		r.Delete("/api/me", s.handleDeleteMe)
		r.Get("/api/quiz/{subject}", s.handleGetQuiz)
		r.Get("/api/courses/{subject}/material", s.handleGetMaterial)
		r.Post("/api/progress", s.handleSubmitScore)
		r.Get("/api/progress", s.handleListProgress)
		r.Get("/api/progress/{subject}", s.handleGetProgress)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
