package repository_test

import (
	"context"
	"testing"

	"github.com/bensuskins/pantry-hub/internal/models"
	"github.com/bensuskins/pantry-hub/internal/repository"
	"github.com/bensuskins/pantry-hub/internal/testutil"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	created, err := userRepo.Create(ctx, models.User{
		OIDCSubject: "oidc-sub-1",
		Email:       "alex@example.com",
		Name:        "Alex",
		Role:        models.RoleMember,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}

	byID, err := userRepo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("finding by id: %v", err)
	}
	if byID.Email != "alex@example.com" || byID.Role != models.RoleMember {
		t.Errorf("unexpected user: %+v", byID)
	}

	bySubject, err := userRepo.FindByOIDCSubject(ctx, "oidc-sub-1")
	if err != nil {
		t.Fatalf("finding by subject: %v", err)
	}
	if bySubject.ID != created.ID {
		t.Errorf("expected same user, got %s", bySubject.ID)
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)

	if _, err := userRepo.FindByOIDCSubject(context.Background(), "nobody"); err == nil {
		t.Error("expected error for unknown subject")
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	created, err := userRepo.Create(ctx, models.User{
		OIDCSubject: "oidc-sub-2", Email: "old@example.com", Name: "Old Name",
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	if err := userRepo.UpdateProfile(ctx, created.ID, "New Name", "new@example.com", "https://cdn/avatar.png"); err != nil {
		t.Fatalf("updating profile: %v", err)
	}

	found, err := userRepo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("finding user: %v", err)
	}
	if found.Name != "New Name" || found.Email != "new@example.com" || found.AvatarURL != "https://cdn/avatar.png" {
		t.Errorf("profile not updated: %+v", found)
	}
}

func TestUserRepository_Count(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	count, err := userRepo.Count(ctx)
	if err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}

	if _, err := userRepo.Create(ctx, models.User{OIDCSubject: "s1", Email: "a@b.c", Name: "A"}); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	count, err = userRepo.Count(ctx)
	if err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}
