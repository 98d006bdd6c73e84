package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

// AuthMiddleware parses the bearer token and, when a repo is supplied,
// rejects any token whose version no longer matches the stored one. Logout
// and password changes bump the stored version, so this is what makes them
// take effect immediately.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		if repo != nil {
			version, err := repo.GetTokenVersion(c.Request.Context(), claims.UserID)
			if err != nil || version != claims.TokenVersion {
				abortUnauthorized(c, "invalid token")
				return
			}
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. The scheme
// comparison is case-insensitive per RFC 7235.
func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
