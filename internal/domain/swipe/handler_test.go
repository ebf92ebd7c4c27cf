package swipe

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/domain/user"
	"github.com/heartlink/heartlink-api/internal/middleware"
	"github.com/heartlink/heartlink-api/internal/pkg/response"
)

func doSwipe(t *testing.T, h *Handler, actorID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/swipes", bytes.NewReader(raw))
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateSwipeHandler(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)

	t.Run("records a like", func(t *testing.T) {
		f := newFixture(actor, target)
		h := NewHandler(f.svc)

		rec := doSwipe(t, h, actor.ID, SwipeRequest{TargetID: target.ID.String(), Action: "like"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp response.Response
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !resp.Success {
			t.Error("expected success envelope")
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		f := newFixture(actor, target)
		h := NewHandler(f.svc)

		req := httptest.NewRequest(http.MethodPost, "/swipes", bytes.NewReader([]byte("{")))
		req = req.WithContext(middleware.WithUserID(req.Context(), actor.ID))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		f := newFixture(actor, target)
		h := NewHandler(f.svc)

		rec := doSwipe(t, h, actor.ID, SwipeRequest{TargetID: target.ID.String(), Action: "wink"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("self swipe maps to 422", func(t *testing.T) {
		f := newFixture(actor, target)
		h := NewHandler(f.svc)

		rec := doSwipe(t, h, actor.ID, SwipeRequest{TargetID: actor.ID.String(), Action: "like"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("duplicate maps to 409", func(t *testing.T) {
		f := newFixture(actor, target)
		f.repo.createErr = ErrDuplicateSwipe
		h := NewHandler(f.svc)

		rec := doSwipe(t, h, actor.ID, SwipeRequest{TargetID: target.ID.String(), Action: "like"})
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("blocked pair maps to 403", func(t *testing.T) {
		f := newFixture(actor, target)
		f.blocks.blocked = true
		h := NewHandler(f.svc)

		rec := doSwipe(t, h, actor.ID, SwipeRequest{TargetID: target.ID.String(), Action: "like"})
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("profile outage maps to 503", func(t *testing.T) {
		f := newFixture(actor, target)
		f.users.err = user.ErrProfileUnavailable
		h := NewHandler(f.svc)

		rec := doSwipe(t, h, actor.ID, SwipeRequest{TargetID: target.ID.String(), Action: "like"})
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", rec.Code)
		}
	})
}
