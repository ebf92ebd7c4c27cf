package block

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/middleware"
	"github.com/heartlink/heartlink-api/internal/pkg/errorhandler"
	"github.com/heartlink/heartlink-api/internal/pkg/response"
)

// Handler handles block HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates block handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Block handles POST /users/{id}/block
// @Summary Block a user
// @Description Blocks a user. Any active match between the pair is ended and the pair disappears from each other's feeds.
// @Tags Blocks
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID to block"
// @Success 200 {object} response.Response
// @Failure 400,422,500 {object} response.Response
// @Router /users/{id}/block [post]
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	blockedID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	blockerID := middleware.GetUserID(r.Context())
	if err := h.service.Block(r.Context(), blockerID, blockedID); err != nil {
		if errors.Is(err, ErrCannotBlockSelf) {
			response.UnprocessableEntity(w, "INVALID_BLOCK", "You cannot block yourself")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to block user", err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// Unblock handles DELETE /users/{id}/block
// @Summary Unblock a user
// @Description Removes a previously created block. A no-op when the pair is not blocked; a match ended by the block stays ended.
// @Tags Blocks
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID to unblock"
// @Success 200 {object} response.Response
// @Failure 400,500 {object} response.Response
// @Router /users/{id}/block [delete]
func (h *Handler) Unblock(w http.ResponseWriter, r *http.Request) {
	blockedID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	blockerID := middleware.GetUserID(r.Context())
	if err := h.service.Unblock(r.Context(), blockerID, blockedID); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unblock user", err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// ListBlocked handles GET /users/me/blocked
// @Summary List blocked users
// @Description Returns all users currently blocked by the authenticated user.
// @Tags Blocks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]BlockedUserResponse}
// @Failure 500 {object} response.Response
// @Router /users/me/blocked [get]
func (h *Handler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	blockerID := middleware.GetUserID(r.Context())
	blocks, err := h.service.ListBlocked(r.Context(), blockerID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list blocked users", err)
		return
	}

	items := make([]*BlockedUserResponse, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, BlockedUserFromEntity(b))
	}

	response.OK(w, items)
}
