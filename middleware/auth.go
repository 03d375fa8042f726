package middleware

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	models "github.com/clubnest/club-nest-go/models"
)

// ContextEmail is the gin context key the verified caller email is bound to.
const ContextEmail = "decoded_email"

// TokenVerifier validates a bearer credential and yields the caller's email.
type TokenVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a verifier from raw service-account JSON.
func NewFirebaseVerifier(ctx context.Context, serviceAccountJSON []byte) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(serviceAccountJSON))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	email, _ := token.Claims["email"].(string)
	return email, nil
}

// Auth rejects requests without a valid bearer token and binds the verified
// email into the context. Routes that tolerate anonymous callers simply do
// not mount this middleware.
func Auth(verifier TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		email, err := verifier.VerifyEmail(c.Request.Context(), parts[1])
		if err != nil || email == "" {
			log.Debug("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(ContextEmail, email)
		c.Next()
	}
}

// RoleFinder resolves the stored role for an email.
type RoleFinder interface {
	RoleByEmail(ctx context.Context, email string) (models.Role, error)
}

// RequireRole gates a route group on the caller's stored role. It must run
// after Auth.
func RequireRole(users RoleFinder, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		got, err := users.RoleByEmail(c.Request.Context(), email)
		if err != nil || got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}
