// Package mockapi is an in-memory double of the remote scheduling API.
// The integration tests run it under httptest, and the `mock` CLI command
// serves it standalone so the client can be exercised without a backend.
package mockapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server hosts the fake API.
type Server struct {
	logger *zap.Logger
	secret []byte
	engine *gin.Engine
	st     *state
}

// New builds a Server seeded with a few providers.
func New(logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		logger: logger,
		secret: []byte("trimly-mock-secret"),
		st:     newState(),
	}
	s.seed()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(rateLimitMiddleware(logger))

	router.POST("/sessions", s.createSession)
	router.POST("/users", s.createUser)

	authed := router.Group("")
	authed.Use(s.requireAuth())
	authed.PUT("/profile", s.updateProfile)
	authed.PATCH("/users/avatar", s.updateAvatar)
	authed.GET("/providers", s.listProviders)
	authed.GET("/providers/:id/day-availability", s.dayAvailability)
	authed.POST("/appointments", s.createAppointment)

	s.engine = router
	return s
}

// Handler exposes the server as an http.Handler for httptest and
// http.Server alike.
func (s *Server) Handler() http.Handler {
	return s.engine
}
