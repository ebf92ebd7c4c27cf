package swipe

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/domain/user"
	"github.com/heartlink/heartlink-api/internal/middleware"
	"github.com/heartlink/heartlink-api/internal/pkg/errorhandler"
	"github.com/heartlink/heartlink-api/internal/pkg/response"
	"github.com/heartlink/heartlink-api/internal/pkg/validator"
)

// Handler handles swipe HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates swipe handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /swipes
// @Summary Record a swipe
// @Description Records one like/pass/super_like decision about another user. Returns whether a mutual match was created.
// @Tags Swipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SwipeRequest true "Swipe payload"
// @Success 201 {object} response.Response{data=SwipeResponse}
// @Failure 400,403,409,422,503 {object} response.Response
// @Router /swipes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		response.BadRequest(w, "Invalid target ID")
		return
	}

	action, ok := ParseAction(req.Action)
	if !ok {
		response.BadRequest(w, "Invalid action")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	result, err := h.service.Swipe(r.Context(), actorID, targetID, action)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSwipe):
			response.UnprocessableEntity(w, "INVALID_SWIPE", "Swipe is not allowed for this pair")
		case errors.Is(err, ErrDuplicateSwipe):
			response.Conflict(w, "DUPLICATE_SWIPE", "You have already swiped on this user")
		case errors.Is(err, ErrBlocked):
			response.Forbidden(w, "Swiping is blocked between these users")
		case errors.Is(err, user.ErrProfileUnavailable):
			response.ServiceUnavailable(w, "PROFILE_UNAVAILABLE", "Profile service is unavailable, try again later")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record swipe", err)
		}
		return
	}

	response.Created(w, SwipeResponseFromResult(result))
}
