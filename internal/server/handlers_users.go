package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/db"
	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/types"
)

// ---------------------------------------------------------------------
// User Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrNoDatabase)
		return
	}

	var req types.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), &db.UserCreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Skills:      req.Skills,
		Education:   req.Education,
		WorkHistory: req.WorkHistory,
	})
	if err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			err = &ErrEmailAlreadyExists{Email: req.Email}
		}
		s.writeError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("User created", zap.String("user_id", user.ID.String()))
	s.jsonResponse(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrNoDatabase)
		return
	}

	userID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "user", ID: userID})
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrNoDatabase)
		return
	}

	var req types.CreateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "user_id", Message: "must be a valid UUID"})
		return
	}

	app, err := s.store.CreateApplication(r.Context(), &db.ApplicationCreateInput{
		UserID:      userID,
		CompanyName: req.CompanyName,
		JobTitle:    req.JobTitle,
		JDURL:       req.JDURL,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, db.ErrUnknownUser) {
			err = &ErrNotFound{Resource: "user", ID: userID}
		}
		s.writeError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("Application created",
		zap.String("application_id", app.ID.String()),
		zap.String("company", app.CompanyName),
	)
	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrNoDatabase)
		return
	}

	userID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	apps, err := s.store.ListApplicationsByUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if apps == nil {
		apps = []db.Application{}
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, ErrNoDatabase)
		return
	}

	appID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.UpdateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	app, err := s.store.UpdateApplication(r.Context(), appID, db.ApplicationUpdate{
		Status: req.Status,
		Score:  req.Score,
		Notes:  req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if app == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "application", ID: appID})
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}
