package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/studiofolio/portfolio-backend/internal/auth"
)

// TokenVerifier validates Firebase ID tokens. The Admin SDK auth client
// satisfies it; tests substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// RequireAdmin validates the Firebase ID token from the Authorization header
// and applies the admin policy to the token's email claim. Requests without a
// valid token get 401; valid tokens outside the allow-list get 403 with the
// fixed denial message.
func RequireAdmin(verifier TokenVerifier, policy auth.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		email, _ := decoded.Claims["email"].(string)
		if email == "" || !policy(email) {
			c.JSON(http.StatusForbidden, gin.H{"error": auth.AccessDeniedMessage})
			c.Abort()
			return
		}

		c.Set("firebase_uid", decoded.UID)
		c.Set("email", email)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
