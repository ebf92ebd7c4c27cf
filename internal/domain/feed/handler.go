package feed

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/heartlink/heartlink-api/internal/domain/user"
	"github.com/heartlink/heartlink-api/internal/middleware"
	"github.com/heartlink/heartlink-api/internal/pkg/errorhandler"
	"github.com/heartlink/heartlink-api/internal/pkg/response"
)

// Handler handles feed HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates feed handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary Get swipe feed
// @Description Returns ranked candidate profiles for the authenticated user
// @Tags feed
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset into the ranked pool"
// @Success 200 {object} response.Response{data=[]CandidateResponse}
// @Failure 401 {object} response.Response
// @Failure 503 {object} response.Response
// @Security BearerAuth
// @Router /feed [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	candidates, err := h.service.GetFeed(r.Context(), viewerID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "Profile not found")
		case errors.Is(err, user.ErrProfileUnavailable):
			response.ServiceUnavailable(w, "PROFILE_UNAVAILABLE", "Profile service is unavailable")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build feed", err)
		}
		return
	}

	now := time.Now()
	out := make([]*CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateResponseFromEntity(c, now))
	}
	response.OK(w, out)
}
