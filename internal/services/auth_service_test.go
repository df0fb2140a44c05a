package services

import (
	"context"
	"errors"
	"testing"

	"github.com/xpotdraw/xpot-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (*AuthServiceImpl, *fakeUserRepo, *fakeAdminUserRepo) {
	userRepo := newFakeUserRepo()
	adminUserRepo := newFakeAdminUserRepo()
	return NewAuthService(userRepo, adminUserRepo, testConfig()), userRepo, adminUserRepo
}

func TestLinkWallet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()

	user, token, err := svc.LinkWallet(ctx, &models.LinkWalletRequest{
		WalletAddress: "0xlinked-wallet-address",
		Handle:        "draws4life",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID.IsZero() {
		t.Error("expected the user to be persisted")
	}
	if user.Handle != "draws4life" {
		t.Errorf("expected handle to be set, got %q", user.Handle)
	}

	sub, role, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("minted token failed validation: %v", err)
	}
	if sub != "0xlinked-wallet-address" || role != "user" {
		t.Errorf("unexpected claims sub=%q role=%q", sub, role)
	}

	// Linking again updates the same record instead of creating a second one.
	again, _, err := svc.LinkWallet(ctx, &models.LinkWalletRequest{
		WalletAddress: "0xlinked-wallet-address",
		DisplayName:   "Draws For Life",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if again.ID != user.ID {
		t.Error("expected the existing user to be reused")
	}
	if again.Handle != "draws4life" || again.DisplayName != "Draws For Life" {
		t.Errorf("expected fields merged, got handle=%q displayName=%q", again.Handle, again.DisplayName)
	}
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, adminUserRepo := newTestAuthService()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := adminUserRepo.Create(ctx, &models.AdminUser{
		Email:        "ops@xpot.example",
		PasswordHash: string(hash),
		Role:         "admin",
	}); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	token, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Email: "ops@xpot.example", Password: "correct horse"})
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	sub, role, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("minted token failed validation: %v", err)
	}
	if sub != "ops@xpot.example" || role != "admin" {
		t.Errorf("unexpected claims sub=%q role=%q", sub, role)
	}

	if _, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Email: "ops@xpot.example", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a bad password, got %v", err)
	}
	if _, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Email: "ghost@xpot.example", Password: "any"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for an unknown email, got %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("expected a parse error for garbage input")
	}

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "a-different-secret"
	other := NewAuthService(newFakeUserRepo(), newFakeAdminUserRepo(), otherCfg)
	_, token, err := other.LinkWallet(context.Background(), &models.LinkWalletRequest{WalletAddress: "0xforeign-wallet-address"})
	if err != nil {
		t.Fatalf("failed to mint foreign token: %v", err)
	}
	if _, _, err := svc.ValidateToken(token); err == nil {
		t.Error("expected a token signed with another secret to be rejected")
	}
}
