package block

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/domain/match"
)

type fakeBlockRepo struct {
	upserted  []*Block
	unblocked bool
	blocked   bool
	upsertErr error
}

func (f *fakeBlockRepo) Upsert(ctx context.Context, b *Block) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, b)
	return nil
}

func (f *fakeBlockRepo) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	return f.unblocked, nil
}

func (f *fakeBlockRepo) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.blocked, nil
}

func (f *fakeBlockRepo) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*Block, error) {
	return nil, nil
}

type fakeMatchEnder struct {
	ended *match.Match
	calls int
	err   error
}

func (f *fakeMatchEnder) EndForBlock(ctx context.Context, blockerID, blockedID uuid.UUID) (*match.Match, error) {
	f.calls++
	return f.ended, f.err
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

func TestBlockRejectsSelf(t *testing.T) {
	repo := &fakeBlockRepo{}
	svc := NewService(repo, &fakeMatchEnder{}, &fakeInvalidator{}, nopTxRunner{})

	id := uuid.New()
	if err := svc.Block(context.Background(), id, id); !errors.Is(err, ErrCannotBlockSelf) {
		t.Errorf("expected ErrCannotBlockSelf, got %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Error("self block must not be recorded")
	}
}

func TestBlockEndsActiveMatch(t *testing.T) {
	repo := &fakeBlockRepo{}
	ender := &fakeMatchEnder{ended: &match.Match{ID: uuid.New(), Status: match.StatusBlocked}}
	inv := &fakeInvalidator{}
	svc := NewService(repo, ender, inv, nopTxRunner{})

	blocker := uuid.New()
	blocked := uuid.New()
	if err := svc.Block(context.Background(), blocker, blocked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.upserted) != 1 {
		t.Fatalf("expected one block row, got %d", len(repo.upserted))
	}
	if ender.calls != 1 {
		t.Errorf("expected the pair's match to be ended, calls=%d", ender.calls)
	}
	if len(inv.invalidated) != 2 {
		t.Errorf("expected both exclusion sets invalidated, got %v", inv.invalidated)
	}
}

func TestBlockWithoutMatchStillBlocks(t *testing.T) {
	repo := &fakeBlockRepo{}
	ender := &fakeMatchEnder{} // no active match for the pair
	svc := NewService(repo, ender, &fakeInvalidator{}, nopTxRunner{})

	if err := svc.Block(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserted) != 1 {
		t.Error("block must be recorded even with no match to end")
	}
}

func TestBlockPropagatesMatchEndFailure(t *testing.T) {
	ender := &fakeMatchEnder{err: errors.New("db down")}
	inv := &fakeInvalidator{}
	svc := NewService(&fakeBlockRepo{}, ender, inv, nopTxRunner{})

	if err := svc.Block(context.Background(), uuid.New(), uuid.New()); err == nil {
		t.Error("expected block to fail when the match transition fails")
	}
	if len(inv.invalidated) != 0 {
		t.Error("failed block must not invalidate caches")
	}
}

func TestUnblockIdempotent(t *testing.T) {
	repo := &fakeBlockRepo{unblocked: false}
	inv := &fakeInvalidator{}
	svc := NewService(repo, &fakeMatchEnder{}, inv, nopTxRunner{})

	if err := svc.Unblock(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unblock of a non-blocked pair must be a no-op, got %v", err)
	}
	if len(inv.invalidated) != 0 {
		t.Error("no-op unblock must not invalidate caches")
	}

	repo.unblocked = true
	if err := svc.Unblock(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.invalidated) != 2 {
		t.Errorf("expected both exclusion sets invalidated after a real unblock, got %v", inv.invalidated)
	}
}
