package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_UserIDRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if _, ok, _ := store.UserID(ctx, id); ok {
		t.Fatal("fresh session should have no user id")
	}

	if err := store.SetUserID(ctx, id, 42); err != nil {
		t.Fatalf("failed to set user id: %v", err)
	}

	userID, ok, err := store.UserID(ctx, id)
	if err != nil {
		t.Fatalf("failed to read user id: %v", err)
	}
	if !ok || userID != 42 {
		t.Errorf("expected user id 42, got %d (ok=%v)", userID, ok)
	}
}

func TestMemoryStore_FlashesAreOneShot(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, _ := store.Create(ctx)

	_ = store.AddFlash(ctx, id, Flash{Category: "danger", Message: "first"})
	_ = store.AddFlash(ctx, id, Flash{Category: "success", Message: "second"})

	flashes, err := store.PopFlashes(ctx, id)
	if err != nil {
		t.Fatalf("failed to pop flashes: %v", err)
	}
	if len(flashes) != 2 {
		t.Fatalf("expected 2 flashes, got %d", len(flashes))
	}
	if flashes[0].Message != "first" || flashes[1].Message != "second" {
		t.Errorf("flashes out of order: %+v", flashes)
	}

	again, _ := store.PopFlashes(ctx, id)
	if len(again) != 0 {
		t.Errorf("expected no flashes on second pop, got %d", len(again))
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	id, _ := store.Create(ctx)
	_ = store.SetUserID(ctx, id, 7)

	now := time.Now()
	store.now = func() time.Time { return now.Add(2 * time.Minute) }

	if _, ok, _ := store.UserID(ctx, id); ok {
		t.Error("expected session to be expired")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, _ := store.Create(ctx)
	_ = store.SetUserID(ctx, id, 7)

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}

	if _, ok, _ := store.UserID(ctx, id); ok {
		t.Error("expected no user id after delete")
	}
}
