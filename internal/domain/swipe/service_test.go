package swipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/domain/match"
	"github.com/heartlink/heartlink-api/internal/domain/user"
)

type fakeSwipeRepo struct {
	created   []*Swipe
	createErr error
	positive  map[[2]uuid.UUID]bool
}

func (f *fakeSwipeRepo) Create(ctx context.Context, s *Swipe) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSwipeRepo) HasPositiveSwipe(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	return f.positive[[2]uuid.UUID{actorID, targetID}], nil
}

func (f *fakeSwipeRepo) ListTargetIDs(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
	err   error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type fakeBlockChecker struct {
	blocked bool
	err     error
}

func (f *fakeBlockChecker) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.blocked, f.err
}

type fakeMatchmaker struct {
	match   *match.Match
	created bool
	err     error
	calls   int
}

func (f *fakeMatchmaker) OnPositiveSwipe(ctx context.Context, actor, target *user.User) (*match.Match, bool, error) {
	f.calls++
	return f.match, f.created, f.err
}

type fakeInvalidator struct {
	invalidated []uuid.UUID
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	f.invalidated = append(f.invalidated, userIDs...)
}

type nopTxRunner struct{}

func (nopTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testUser(status user.Status) *user.User {
	return &user.User{
		ID:        uuid.New(),
		Status:    status,
		BirthDate: time.Now().AddDate(-30, 0, -1),
	}
}

type fixture struct {
	repo    *fakeSwipeRepo
	users   *fakeUserRepo
	blocks  *fakeBlockChecker
	matches *fakeMatchmaker
	inv     *fakeInvalidator
	svc     *Service
}

func newFixture(participants ...*user.User) *fixture {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
	for _, u := range participants {
		users.users[u.ID] = u
	}
	f := &fixture{
		repo:    &fakeSwipeRepo{positive: make(map[[2]uuid.UUID]bool)},
		users:   users,
		blocks:  &fakeBlockChecker{},
		matches: &fakeMatchmaker{},
		inv:     &fakeInvalidator{},
	}
	f.svc = NewService(f.repo, f.users, f.blocks, f.matches, f.inv, nopTxRunner{})
	return f
}

func TestSwipeRejectsSelf(t *testing.T) {
	u := testUser(user.StatusActive)
	f := newFixture(u)

	_, err := f.svc.Swipe(context.Background(), u.ID, u.ID, ActionLike)
	if !errors.Is(err, ErrInvalidSwipe) {
		t.Errorf("expected ErrInvalidSwipe for self swipe, got %v", err)
	}
	if len(f.repo.created) != 0 {
		t.Error("self swipe must not be recorded")
	}
}

func TestSwipeRejectsUnknownTarget(t *testing.T) {
	actor := testUser(user.StatusActive)
	f := newFixture(actor)

	_, err := f.svc.Swipe(context.Background(), actor.ID, uuid.New(), ActionLike)
	if !errors.Is(err, user.ErrProfileUnavailable) {
		t.Errorf("expected ErrProfileUnavailable for unknown target, got %v", err)
	}
	if len(f.repo.created) != 0 {
		t.Error("swipe against an unresolvable profile must not be recorded")
	}
}

func TestSwipeRejectsInactiveParticipants(t *testing.T) {
	for _, status := range []user.Status{user.StatusPaused, user.StatusBanned, user.StatusDeleted} {
		t.Run(string(status), func(t *testing.T) {
			actor := testUser(user.StatusActive)
			target := testUser(status)
			f := newFixture(actor, target)

			_, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionLike)
			if !errors.Is(err, ErrInvalidSwipe) {
				t.Errorf("expected ErrInvalidSwipe against %s target, got %v", status, err)
			}
		})
	}
}

func TestSwipeFailsClosedOnProfileError(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)
	f.users.err = user.ErrProfileUnavailable

	_, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionLike)
	if !errors.Is(err, user.ErrProfileUnavailable) {
		t.Errorf("expected profile error to propagate, got %v", err)
	}
	if len(f.repo.created) != 0 {
		t.Error("swipe must not be recorded if profiles cannot be resolved")
	}
}

func TestSwipeRejectsBlockedPair(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)
	f.blocks.blocked = true

	_, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionLike)
	if !errors.Is(err, ErrBlocked) {
		t.Errorf("expected ErrBlocked, got %v", err)
	}
	if len(f.repo.created) != 0 {
		t.Error("blocked pair swipe must not be recorded")
	}
}

func TestSwipeDuplicate(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)
	f.repo.createErr = ErrDuplicateSwipe

	_, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionLike)
	if !errors.Is(err, ErrDuplicateSwipe) {
		t.Errorf("expected ErrDuplicateSwipe, got %v", err)
	}
	if f.matches.calls != 0 {
		t.Error("match detection must not run for a rejected duplicate")
	}
}

func TestSwipePassSkipsMatchDetection(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)

	result, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionPass)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched {
		t.Error("pass must never match")
	}
	if f.matches.calls != 0 {
		t.Error("match detection must not run for a pass")
	}
	if len(f.repo.created) != 1 {
		t.Errorf("pass must still be recorded, got %d rows", len(f.repo.created))
	}
}

func TestSwipeLikeWithoutReciprocal(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)

	result, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched || result.Match != nil {
		t.Error("like without reciprocal must not match")
	}
	if f.matches.calls != 1 {
		t.Errorf("match detection must run once for a like, ran %d times", f.matches.calls)
	}
	if len(f.inv.invalidated) != 1 || f.inv.invalidated[0] != actor.ID {
		t.Errorf("only the actor's exclusion set must be invalidated, got %v", f.inv.invalidated)
	}
}

func TestSwipeLikeCreatesMatch(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)

	lowID, highID := match.CanonicalPair(actor.ID, target.ID)
	f.matches.match = &match.Match{
		ID:         uuid.New(),
		UserLowID:  lowID,
		UserHighID: highID,
		Status:     match.StatusActive,
	}
	f.matches.created = true

	result, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionSuperLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Matched || result.Match == nil {
		t.Fatal("expected the swipe to report the new match")
	}
	if result.Match.ID != f.matches.match.ID {
		t.Error("result must carry the created match")
	}
	if len(f.inv.invalidated) != 2 {
		t.Fatalf("a match must invalidate both participants' exclusion sets, got %v", f.inv.invalidated)
	}
	got := map[uuid.UUID]bool{f.inv.invalidated[0]: true, f.inv.invalidated[1]: true}
	if !got[actor.ID] || !got[target.ID] {
		t.Errorf("expected actor and target invalidated, got %v", f.inv.invalidated)
	}
}

func TestSwipeObservedExistingInactiveMatch(t *testing.T) {
	actor := testUser(user.StatusActive)
	target := testUser(user.StatusActive)
	f := newFixture(actor, target)

	// Historical blocked match surfaced by the pair index; the swipe is
	// recorded but must not report a fresh match.
	f.matches.match = &match.Match{ID: uuid.New(), Status: match.StatusBlocked}

	result, err := f.svc.Swipe(context.Background(), actor.ID, target.ID, ActionLike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Matched {
		t.Error("an ended match must not be reported as a new one")
	}
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"like":       ActionLike,
		"pass":       ActionPass,
		"super_like": ActionSuperLike,
	} {
		got, ok := ParseAction(in)
		if !ok || got != want {
			t.Errorf("ParseAction(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}

	if _, ok := ParseAction("wink"); ok {
		t.Error("expected unknown action to be rejected")
	}
}
