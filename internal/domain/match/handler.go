package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/middleware"
	"github.com/heartlink/heartlink-api/internal/pkg/errorhandler"
	"github.com/heartlink/heartlink-api/internal/pkg/response"
)

// Handler handles match HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates match handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /matches
// @Summary List active matches
// @Description Returns the authenticated user's active matches, newest first.
// @Tags Matches
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.Response{data=[]MatchResponse}
// @Failure 500 {object} response.Response
// @Router /matches [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	matches, err := h.service.ListForUser(r.Context(), userID, limit, offset)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list matches", err)
		return
	}

	items := make([]*MatchResponse, 0, len(matches))
	for _, m := range matches {
		items = append(items, MatchResponseFromJoined(m, userID))
	}

	response.OK(w, items)
}

// Get handles GET /matches/{id}
// @Summary Get a match
// @Description Returns a single match with its compatibility score. Participants only.
// @Tags Matches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 200 {object} response.Response{data=MatchResponse}
// @Failure 400,403,404 {object} response.Response
// @Router /matches/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid match ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	m, score, err := h.service.GetForUser(r.Context(), userID, matchID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			response.NotFound(w, "Match not found")
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, "You are not a participant of this match")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get match", err)
		}
		return
	}

	response.OK(w, MatchResponseFromEntity(m, userID, score))
}

// Unmatch handles POST /matches/{id}/unmatch
// @Summary Unmatch
// @Description Ends an active match. The other participant is notified; the pair will never be shown to each other again.
// @Tags Matches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Match ID"
// @Success 200 {object} response.Response{data=MatchResponse}
// @Failure 400,403,404,409 {object} response.Response
// @Router /matches/{id}/unmatch [post]
func (h *Handler) Unmatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid match ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	m, err := h.service.Unmatch(r.Context(), userID, matchID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			response.NotFound(w, "Match not found")
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, "You are not a participant of this match")
		case errors.Is(err, ErrMatchNotActive):
			response.Conflict(w, "MATCH_NOT_ACTIVE", "Match has already ended")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unmatch", err)
		}
		return
	}

	response.OK(w, MatchResponseFromEntity(m, userID, nil))
}
