package mockapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of client IPs to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/200), 200)
		s.limiters[ip] = limiter
	}
	return limiter
}

// rateLimitMiddleware limits requests per client IP.
func rateLimitMiddleware(logger *zap.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{limiters: make(map[string]*rate.Limiter)}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			logger.Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Message: "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}

// requireAuth resolves the bearer token to an account and stores it in
// the request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			s.jsonError(c, http.StatusUnauthorized, "Missing bearer token", "")
			return
		}

		userID, err := s.extractIDFromToken(tokenString)
		if err != nil {
			s.jsonError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}

		s.st.mu.Lock()
		acct, ok := s.st.accountsByID[userID]
		s.st.mu.Unlock()
		if !ok {
			s.jsonError(c, http.StatusUnauthorized, "Unknown user", "")
			return
		}

		c.Set("account", acct)
		c.Next()
	}
}

// currentAccount fetches the account installed by requireAuth.
func currentAccount(c *gin.Context) *account {
	v, _ := c.Get("account")
	acct, _ := v.(*account)
	return acct
}
