package offline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mlukyanov/quizpoints/internal/domain"
	"github.com/mlukyanov/quizpoints/internal/dto"
	syncservice "github.com/mlukyanov/quizpoints/internal/service/syncservice"
	"github.com/mlukyanov/quizpoints/pkg/auth"
	"github.com/mlukyanov/quizpoints/pkg/utils"
)

type Service interface {
	Enqueue(ctx context.Context, userID int, kind, requestID string, patch domain.AccountPatch) (*domain.OfflineAction, error)
	DrainForUser(ctx context.Context, userID int) (int, error)
}

type OfflineHandler struct {
	syncService Service
}

func New(syncService Service) *OfflineHandler {
	return &OfflineHandler{
		syncService: syncService,
	}
}

// Sync godoc
//
//	@Summary		Upload deferred account mutations
//	@Description	Queue the mutations a client made while disconnected; they are merged into the account on reconcile.
//	@Tags			Sync
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SyncRequestDTO	true	"Deferred actions"
//	@Success		202		{object}	dto.SyncResponseDTO	"Actions queued"
//	@Failure		401		{object}	utils.Response		"User not authorized"
//	@Failure		404		{object}	utils.Response		"Account not found"
//	@Failure		500		{object}	utils.Response		"Internal server error"
//	@Router			/api/user/sync [post]
func (h *OfflineHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.SyncRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	queued := 0
	for _, action := range req.Actions {
		patch := domain.AccountPatch{
			Balance:          action.Payload.Balance,
			Tokens:           action.Payload.Tokens,
			GamesPlayed:      action.Payload.GamesPlayed,
			Badges:           action.Payload.Badges,
			UnlockedThemes:   action.Payload.UnlockedThemes,
			CompletedLessons: action.Payload.CompletedLessons,
		}
		if _, err := h.syncService.Enqueue(r.Context(), userID, action.Kind, action.RequestID, patch); err != nil {
			respondSyncError(w, err)
			return
		}
		queued++
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.SyncResponseDTO{Queued: queued})
}

// Reconcile godoc
//
//	@Summary		Replay queued mutations now
//	@Description	Drain the caller's offline queue against the authoritative account.
//	@Tags			Sync
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReconcileResponseDTO	"Actions merged"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"Account not found"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/user/sync/reconcile [post]
func (h *OfflineHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	drained, err := h.syncService.DrainForUser(r.Context(), userID)
	if err != nil {
		respondSyncError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReconcileResponseDTO{Drained: drained})
}

func respondSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, syncservice.ErrAccountNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
