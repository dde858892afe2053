package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nba-gm-sim/matchengine/pkg/utils"
)

// Claims identifies the calling service/operator account, stripped of the
// DFS-era user_id/email pair in favor of a generic subject + role model
// suited to a league-operations backend (batch runners, the admin UI,
// other internal services) rather than individual fantasy-sports users.
type Claims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendUnauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.SendUnauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(*Claims); ok {
			c.Set("subject", claims.Subject)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// OptionalAuth populates subject/role when a valid token is present but
// never rejects the request, used for the websocket upgrade endpoint
// where anonymous read-only replay viewing is allowed.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(*Claims); ok {
				c.Set("subject", claims.Subject)
				c.Set("role", claims.Role)
				c.Set("authenticated", true)
			}
		}
		c.Next()
	}
}

// RequireRole builds on AuthRequired, rejecting callers whose role claim
// isn't in allowed. Used to gate POST /leagues/:season_id/ingest to
// trusted batch-runner or admin credentials.
func RequireRole(allowed ...string) gin.HandlerFunc {
	set := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		set[r] = true
	}
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleStr, _ := role.(string)
		if !set[roleStr] {
			utils.SendForbidden(c, "insufficient role for this operation")
			c.Abort()
			return
		}
		c.Next()
	}
}
