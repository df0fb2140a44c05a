package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// AuthService defines identity operations: wallet-link sessions for players
// and credential login for dashboard operators.
type AuthService interface {
	// LinkWallet upserts the user for a wallet and returns a session token.
	LinkWallet(ctx context.Context, req *models.LinkWalletRequest) (*models.User, string, error)
	// AdminLogin verifies an operator's credentials and returns a session token.
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error)
	// ValidateToken parses a session token and returns its subject and role.
	ValidateToken(tokenString string) (subject, role string, err error)
}

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl implements AuthService over the user repositories
type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	adminUserRepo repositories.AdminUserRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.UserRepository, adminUserRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		adminUserRepo: adminUserRepo,
		cfg:           cfg,
	}
}

// LinkWallet upserts the user record for a wallet and mints a session JWT
func (s *AuthServiceImpl) LinkWallet(ctx context.Context, req *models.LinkWalletRequest) (*models.User, string, error) {
	user, err := s.userRepo.FindByWallet(ctx, req.WalletAddress)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", fmt.Errorf("failed to look up user: %w", err)
		}
		user = &models.User{WalletAddress: req.WalletAddress}
	}

	if req.Handle != "" {
		user.Handle = req.Handle
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if user.ID.IsZero() {
		err = s.userRepo.Create(ctx, user)
	} else {
		err = s.userRepo.Update(ctx, user)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to save user: %w", err)
	}

	token, err := s.mintToken(user.WalletAddress, "user")
	if err != nil {
		return nil, "", err
	}

	slog.Info("wallet linked", "userId", user.ID.Hex(), "handle", user.Handle)
	return user, token, nil
}

// AdminLogin verifies operator credentials against the stored bcrypt hash
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.mintToken(adminUser.Email, adminUser.Role)
}

// ValidateToken parses a session JWT and returns its subject and role claims
func (s *AuthServiceImpl) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", "", errors.New("token has no subject")
	}
	role, _ := claims["role"].(string)
	return sub, role, nil
}

func (s *AuthServiceImpl) mintToken(subject, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Duration(s.cfg.JWT.ExpiresIn) * time.Second).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
