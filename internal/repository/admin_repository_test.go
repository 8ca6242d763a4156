package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/domain"

	"github.com/google/uuid"
)

func newTestAdmin(username string) *domain.Admin {
	return &domain.Admin{
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmno",
		Email:        username + "@techbucket.com.np",
		Role:         "admin",
		IsActive:     true,
	}
}

func TestAdminCreateAndFind(t *testing.T) {
	truncate(t, "admins")

	repo := NewAdminRepository(testDB)
	ctx := context.Background()

	admin := newTestAdmin("admin")
	if err := repo.Create(ctx, admin); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if admin.ID == 0 {
		t.Error("Expected Create to assign an ID")
	}

	byName, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if byName.ID != admin.ID || byName.Email != admin.Email {
		t.Error("FindByUsername returned a different row")
	}
	if byName.LastLogin != nil {
		t.Error("Expected last_login to start NULL")
	}

	byID, err := repo.FindByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if byID.Username != "admin" {
		t.Errorf("Expected username admin, got %s", byID.Username)
	}

	if _, err := repo.FindByUsername(ctx, "nobody"); err != ErrAdminNotFound {
		t.Errorf("Expected ErrAdminNotFound, got %v", err)
	}
}

func TestAdminDuplicateUsernameRejected(t *testing.T) {
	truncate(t, "admins")

	repo := NewAdminRepository(testDB)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestAdmin("admin")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, newTestAdmin("admin")); err != ErrAdminAlreadyExists {
		t.Errorf("Expected ErrAdminAlreadyExists, got %v", err)
	}
}

func TestAdminUpdateLastLogin(t *testing.T) {
	truncate(t, "admins")

	repo := NewAdminRepository(testDB)
	ctx := context.Background()

	admin := newTestAdmin("admin")
	if err := repo.Create(ctx, admin); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.UpdateLastLogin(ctx, admin.ID); err != nil {
		t.Fatalf("UpdateLastLogin failed: %v", err)
	}

	retrieved, err := repo.FindByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if retrieved.LastLogin == nil {
		t.Fatal("Expected last_login to be set")
	}
	if time.Since(*retrieved.LastLogin) > time.Minute {
		t.Errorf("last_login not recent: %v", retrieved.LastLogin)
	}
}

func TestAdminUpdateCredentials(t *testing.T) {
	truncate(t, "admins")

	repo := NewAdminRepository(testDB)
	ctx := context.Background()

	admin := newTestAdmin("admin")
	if err := repo.Create(ctx, admin); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other := newTestAdmin("operator")
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	admin.Username = "techbucket-admin"
	admin.Email = "root@techbucket.com.np"
	if err := repo.UpdateCredentials(ctx, admin); err != nil {
		t.Fatalf("UpdateCredentials failed: %v", err)
	}

	retrieved, err := repo.FindByUsername(ctx, "techbucket-admin")
	if err != nil {
		t.Fatalf("FindByUsername failed after rename: %v", err)
	}
	if retrieved.Email != "root@techbucket.com.np" {
		t.Errorf("Email not updated, got %s", retrieved.Email)
	}

	// Renaming onto a taken username fails
	other.Username = "techbucket-admin"
	if err := repo.UpdateCredentials(ctx, other); err != ErrAdminAlreadyExists {
		t.Errorf("Expected ErrAdminAlreadyExists, got %v", err)
	}
}

func TestTokenCreateFindRevoke(t *testing.T) {
	truncate(t, "admins", "admin_tokens")

	adminRepo := NewAdminRepository(testDB)
	tokenRepo := NewTokenRepository(testDB)
	ctx := context.Background()

	admin := newTestAdmin("admin")
	if err := adminRepo.Create(ctx, admin); err != nil {
		t.Fatalf("Create admin failed: %v", err)
	}

	token := &domain.AdminToken{
		AdminID:   admin.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := tokenRepo.Create(ctx, token); err != nil {
		t.Fatalf("Create token failed: %v", err)
	}

	retrieved, err := tokenRepo.FindByToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("FindByToken failed: %v", err)
	}
	if retrieved.AdminID != admin.ID {
		t.Errorf("Expected admin ID %d, got %d", admin.ID, retrieved.AdminID)
	}

	if err := tokenRepo.Revoke(ctx, token.Token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := tokenRepo.FindByToken(ctx, token.Token); err != ErrTokenRevoked {
		t.Errorf("Expected ErrTokenRevoked, got %v", err)
	}

	if _, err := tokenRepo.FindByToken(ctx, "missing"); err != ErrTokenNotFound {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
	if err := tokenRepo.Revoke(ctx, "missing"); err != ErrTokenNotFound {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
}
