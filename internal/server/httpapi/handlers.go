package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aturkov/scorekeep/internal/server/models"
	"github.com/aturkov/scorekeep/internal/server/services"
)

// userView is the public representation of a user. The password hash never
// leaves the service.
type userView struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}

type progressView struct {
	Subject     string    `json:"subject"`
	Score       int64     `json:"score"`
	LastUpdated time.Time `json:"last_updated"`
}

func toProgressView(r *models.ProgressRecord) progressView {
	return progressView{Subject: r.Subject, Score: r.Score, LastUpdated: r.LastUpdated}
}

func toProgressViews(records []*models.ProgressRecord) []progressView {
	views := make([]progressView, 0, len(records))
	for _, r := range records {
		views = append(views, toProgressView(r))
	}
	return views
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := s.accounts.Register(ctx, req.FullName, req.Email, req.Nickname, req.Password)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusCreated, toUserView(user))
}

type loginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, token, err := s.accounts.Login(ctx, req.Nickname, req.Password)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, loginResponse{Token: token, User: toUserView(user)})
}

type meResponse struct {
	User     userView       `json:"user"`
	Progress []progressView `json:"progress"`
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	user, err := s.accounts.GetUserByID(ctx, userID)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	records, err := s.progress.ListProgress(ctx, userID)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, meResponse{
		User:     toUserView(user),
		Progress: toProgressViews(records),
	})
}

type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	var req updateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := s.accounts.UpdateProfile(ctx, userID, services.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Nickname: req.Nickname,
	})
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, toUserView(user))
}

func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	if err := s.accounts.DeleteUser(ctx, userID); err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithMessage(ctx, w, http.StatusOK, "account deleted")
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(r.Context(), w, http.StatusOK, s.catalog.Courses())
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := chi.URLParam(r, "subject")

	questions, err := s.catalog.Questions(subject)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, map[string]any{
		"subject":   subject,
		"questions": questions,
	})
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := chi.URLParam(r, "subject")

	url, err := s.materials.GetDownloadURL(ctx, subject)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, map[string]string{"url": url})
}

type submitScoreRequest struct {
	Subject string `json:"subject"`
	Score   int64  `json:"score"`
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	record, err := s.progress.SubmitScore(ctx, userID, req.Subject, req.Score)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, toProgressView(record))
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)

	records, err := s.progress.ListProgress(ctx, userID)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, toProgressViews(records))
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := UserIDFromContext(ctx)
	subject := chi.URLParam(r, "subject")

	record, err := s.progress.GetProgress(ctx, userID, subject)
	if err != nil {
		s.respondWithServiceError(ctx, w, err)
		return
	}

	s.respondWithJSON(ctx, w, http.StatusOK, toProgressView(record))
}
