package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/pkg/jwt"
	"github.com/Lexv0lk/coin-shop/internal/pkg/logging"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	authHeaderName = "Authorization"

	userIDContextKey = "user_id"
	adminContextKey  = "admin"
)

func NewAuthMiddleware(parser jwt.TokenParser, secret []byte, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "missing authorization header"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid auth header"})
			return
		}

		claims, err := parser.ParseToken(secret, parts[1])
		if err != nil {
			logger.Debug("rejected token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid token"})
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Set(adminContextKey, claims.Admin)
		c.Next()
	}
}

func NewAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(adminContextKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"errors": "admin permissions required"})
			return
		}

		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(userIDContextKey)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per authenticated user.
type UserRateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[int64]*visitor
}

func NewUserRateLimiter(rps float64, burst int) *UserRateLimiter {
	return &UserRateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[int64]*visitor),
	}
}

func (rl *UserRateLimiter) Allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[userID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[userID] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow()
}

// Sweep forgets users that have been idle for longer than idle.
func (rl *UserRateLimiter) Sweep(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for id, v := range rl.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(rl.visitors, id)
			removed++
		}
	}

	return removed
}

// Middleware must run after the auth middleware.
func (rl *UserRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(userID(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"errors": "too many requests, slow down"})
			return
		}

		c.Next()
	}
}
