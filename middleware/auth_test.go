package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	models "github.com/clubnest/club-nest-go/models"
)

type fakeVerifier struct {
	email string
	err   error
}

func (f fakeVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	return f.email, f.err
}

type fakeRoles struct {
	roles map[string]models.Role
}

func (f fakeRoles) RoleByEmail(ctx context.Context, email string) (models.Role, error) {
	role, ok := f.roles[email]
	if !ok {
		return models.RoleMember, nil
	}
	return role, nil
}

func authRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Auth(verifier, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(ContextEmail)})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	r := authRouter(fakeVerifier{email: "a@b.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "unauthorized access") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	r := authRouter(fakeVerifier{email: "a@b.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r := authRouter(fakeVerifier{err: errors.New("expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthBindsEmail(t *testing.T) {
	r := authRouter(fakeVerifier{email: "member@example.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "member@example.com") {
		t.Errorf("body: %s", w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	roles := fakeRoles{roles: map[string]models.Role{
		"admin@example.com":   models.RoleAdmin,
		"manager@example.com": models.RoleClubManager,
	}}

	r := gin.New()
	r.GET("/admin-only",
		Auth(fakeVerifierFromHeader{}, zap.NewNop()),
		RequireRole(roles, models.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	tests := []struct {
		email string
		want  int
	}{
		{"admin@example.com", http.StatusOK},
		{"manager@example.com", http.StatusForbidden},
		{"member@example.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+tt.email)
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s: got %d, want %d", tt.email, w.Code, tt.want)
		}
	}
}

// fakeVerifierFromHeader treats the bearer token itself as the email, so one
// router can exercise several callers.
type fakeVerifierFromHeader struct{}

func (fakeVerifierFromHeader) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	return idToken, nil
}
