package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xpotdraw/xpot-backend/internal/config"
	"github.com/xpotdraw/xpot-backend/internal/models"
	"github.com/xpotdraw/xpot-backend/internal/services"
)

// stubAuthService satisfies services.AuthService; only ValidateToken matters
// for middleware tests.
type stubAuthService struct {
	subject string
	role    string
	err     error
}

func (s *stubAuthService) LinkWallet(ctx context.Context, req *models.LinkWalletRequest) (*models.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error) {
	return "", nil
}

func (s *stubAuthService) ValidateToken(tokenString string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return s.subject, s.role, nil
}

var _ services.AuthService = (*stubAuthService)(nil)

func adminRouter(cfg *config.Config, authService services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuthMiddleware(cfg, authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doAdminRequest(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthMiddleware(t *testing.T) {
	cfg := &config.Config{Admin: config.AdminConfig{Token: "super-secret"}}
	badToken := &stubAuthService{err: services.ErrInvalidCredentials}

	t.Run("rejects everything when no token is configured", func(t *testing.T) {
		r := adminRouter(&config.Config{}, badToken)

		w := doAdminRequest(r, map[string]string{"x-admin-token": "anything"})
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), models.ErrCodeNotConfigured) {
			t.Errorf("expected %s in body, got %s", models.ErrCodeNotConfigured, w.Body.String())
		}
	})

	t.Run("rejects requests without a credential", func(t *testing.T) {
		r := adminRouter(cfg, badToken)

		w := doAdminRequest(r, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), models.ErrCodeUnauthorized) {
			t.Errorf("expected %s in body, got %s", models.ErrCodeUnauthorized, w.Body.String())
		}
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		r := adminRouter(cfg, badToken)

		w := doAdminRequest(r, map[string]string{"x-admin-token": "guess"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("accepts the secret in x-admin-token", func(t *testing.T) {
		r := adminRouter(cfg, badToken)

		w := doAdminRequest(r, map[string]string{"x-admin-token": "super-secret"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("accepts the secret as a bearer token", func(t *testing.T) {
		r := adminRouter(cfg, badToken)

		w := doAdminRequest(r, map[string]string{"Authorization": "Bearer super-secret"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("accepts an operator session with the admin role", func(t *testing.T) {
		r := adminRouter(cfg, &stubAuthService{subject: "ops@xpot.example", role: "admin"})

		w := doAdminRequest(r, map[string]string{"Authorization": "Bearer some.session.jwt"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("rejects a session without the admin role", func(t *testing.T) {
		r := adminRouter(cfg, &stubAuthService{subject: "0xplayer-wallet", role: "user"})

		w := doAdminRequest(r, map[string]string{"Authorization": "Bearer some.session.jwt"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestUserAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(authService services.AuthService) *gin.Engine {
		r := gin.New()
		r.GET("/session/me", UserAuthMiddleware(authService), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "wallet": c.GetString("walletAddress")})
		})
		return r
	}

	t.Run("sets the wallet from the session token", func(t *testing.T) {
		r := newRouter(&stubAuthService{subject: "0xsession-wallet-address", role: "user"})

		req := httptest.NewRequest(http.MethodGet, "/session/me", nil)
		req.Header.Set("Authorization", "Bearer some.session.jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "0xsession-wallet-address") {
			t.Errorf("expected wallet in body, got %s", w.Body.String())
		}
	})

	t.Run("rejects a missing or invalid token", func(t *testing.T) {
		r := newRouter(&stubAuthService{err: services.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodGet, "/session/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without a header, got %d", w.Code)
		}

		req = httptest.NewRequest(http.MethodGet, "/session/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for a bad token, got %d", w.Code)
		}
	})
}
