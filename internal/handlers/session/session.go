package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/dto"
	sessionservice "github.com/mlukyanov/quizpoints/internal/service/sessionservice"
	"github.com/mlukyanov/quizpoints/internal/watch"
	"github.com/mlukyanov/quizpoints/pkg/auth"
	"github.com/mlukyanov/quizpoints/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, hostID int, hostName string) (*domain.GameSession, error)
	Get(ctx context.Context, code string) (*domain.GameSession, error)
	Join(ctx context.Context, code string, userID int, name string) (*domain.GameSession, error)
	Leave(ctx context.Context, code string, userID int) error
	Start(ctx context.Context, code string, callerID int) (*domain.GameSession, error)
	SubmitAnswer(ctx context.Context, code string, userID int, questionID string, answerIndex, elapsedMs int) (*domain.GameSession, error)
}

type Watcher interface {
	Watch(ctx context.Context, code string) (<-chan domain.GameSession, error)
}

type SessionHandler struct {
	sessionService Service
	watcher        Watcher
}

func New(sessionService Service, watcher Watcher) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		watcher:        watcher,
	}
}

// Create godoc
//
//	@Summary		Create a practice session
//	@Description	Open a new waiting session with the caller as host and return its join code.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.JoinRequestDTO		true	"Host display name"
//	@Success		201		{object}	dto.SessionResponseDTO	"Created session"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/sessions [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.JoinRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionService.Create(r.Context(), userID, req.Name)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toSessionDTO(session))
}

// Get godoc
//
//	@Summary		Get session state
//	@Description	The poll target: returns the current shared session state.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		string					true	"Join code"
//	@Success		200		{object}	dto.SessionResponseDTO	"Session state"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Session not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/sessions/{code} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	session, err := h.sessionService.Get(r.Context(), code)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toSessionDTO(session))
}

// Join godoc
//
//	@Summary		Join a waiting session
//	@Description	Add the caller to the session. Joining again with the same identity returns the session unchanged.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string					true	"Join code"
//	@Param			request	body		dto.JoinRequestDTO		true	"Display name"
//	@Success		200		{object}	dto.SessionResponseDTO	"Joined session"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Session not found"
//	@Failure		409		{object}	utils.Response			"Already started or full"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/sessions/{code}/join [post]
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	code := chi.URLParam(r, "code")

	var req dto.JoinRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionService.Join(r.Context(), code, userID, req.Name)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toSessionDTO(session))
}

// Leave godoc
//
//	@Summary		Leave a waiting session
//	@Description	Remove the caller from a session that has not started. The host leaving dissolves it.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		string			true	"Join code"
//	@Success		200		{object}	utils.Response	"Left the session"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Session not found"
//	@Failure		409		{object}	utils.Response	"Session already started"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/{code}/leave [post]
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	code := chi.URLParam(r, "code")

	if err := h.sessionService.Leave(r.Context(), code, userID); err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "left the session"})
}

// Start godoc
//
//	@Summary		Start the session
//	@Description	Freeze the question set and move the session to in-progress. Host only.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		string					true	"Join code"
//	@Success		200		{object}	dto.SessionResponseDTO	"Started session"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Session not found"
//	@Failure		409		{object}	utils.Response			"Not host or not waiting"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/sessions/{code}/start [post]
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	code := chi.URLParam(r, "code")

	session, err := h.sessionService.Start(r.Context(), code, userID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toSessionDTO(session))
}

// SubmitAnswer godoc
//
//	@Summary		Submit an answer
//	@Description	Record the caller's answer to the current question. Duplicate submissions are no-ops.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string							true	"Join code"
//	@Param			request	body		dto.SubmitAnswerRequestDTO		true	"Answer payload"
//	@Success		200		{object}	dto.SessionResponseDTO			"Session after the answer"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		404		{object}	utils.Response					"Session not found"
//	@Failure		409		{object}	utils.Response					"Question mismatch"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/sessions/{code}/answers [post]
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	code := chi.URLParam(r, "code")

	var req dto.SubmitAnswerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionService.SubmitAnswer(r.Context(), code, userID, req.QuestionID, req.AnswerIndex, req.ElapsedMs)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toSessionDTO(session))
}

// Watch godoc
//
//	@Summary		Stream session changes
//	@Description	Emit the current state, then a fresh snapshot whenever the shared session changes, as newline-delimited JSON. The stream ends when the session finishes or the client disconnects.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			code	path		string					true	"Join code"
//	@Success		200		{object}	dto.SessionResponseDTO	"Snapshot stream"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		404		{object}	utils.Response			"Session not found"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/sessions/{code}/watch [get]
func (h *SessionHandler) Watch(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	updates, err := h.watcher.Watch(r.Context(), code)
	if err != nil {
		if errors.Is(err, watch.ErrSessionNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	enc := json.NewEncoder(w)
	for snapshot := range updates {
		if err := enc.Encode(toSessionDTO(&snapshot)); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sessionservice.ErrAlreadyStarted),
		errors.Is(err, sessionservice.ErrSessionFull),
		errors.Is(err, sessionservice.ErrNotHost),
		errors.Is(err, sessionservice.ErrNotWaiting),
		errors.Is(err, sessionservice.ErrNotStarted),
		errors.Is(err, sessionservice.ErrNotInSession),
		errors.Is(err, sessionservice.ErrQuestionMismatch):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toSessionDTO(session *domain.GameSession) dto.SessionResponseDTO {
	players := make([]dto.PlayerDTO, 0, len(session.Players))
	for _, p := range session.Players {
		players = append(players, dto.PlayerDTO{
			ID:            p.ID,
			Name:          p.Name,
			Score:         p.Score,
			ProgressIndex: p.ProgressIndex,
			Streak:        p.Streak,
		})
	}
	questions := make([]dto.QuestionDTO, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, dto.QuestionDTO{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}
	return dto.SessionResponseDTO{
		Code:                 session.Code,
		HostID:               session.HostID,
		Status:               string(session.Status),
		Players:              players,
		Questions:            questions,
		CurrentQuestionIndex: session.CurrentQuestionIndex,
		CreatedAt:            session.CreatedAt,
	}
}
