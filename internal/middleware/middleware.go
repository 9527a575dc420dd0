package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/assignment-manager/api-go/internal/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// PrincipalKey is the Gin context key holding the authenticated principal.
const PrincipalKey = "principal"

// RequireAuth rejects requests without a valid bearer token. Checks run in
// order: header present, header shaped "Bearer <token>", token verifies.
func RequireAuth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}
		p, err := tm.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(PrincipalKey, p)
		c.Next()
	}
}

// CORS allows only the configured origins (exact match). Requests without
// an Origin header pass untouched; everything else is rejected before any
// handler runs.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	})
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		user := "-"
		if v, ok := c.Get(PrincipalKey); ok {
			if p, ok := v.(auth.Principal); ok {
				user = p.Username
			}
		}
		log.Printf("%s %s -> %d in %dms user=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Milliseconds(), user)
	}
}
