// Package api exposes the directives over HTTP: a deidentify endpoint that
// applies a directive to a posted row batch, and a health endpoint.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/wrangle/pkg/directive"
)

// Server represents the API server
type Server struct {
	registry *directive.Registry
	router   *gin.Engine
}

// NewServer creates a new API server routing directive requests through
// the given registry.
func NewServer(registry *directive.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger())

	s := &Server{
		registry: registry,
		router:   router,
	}

	router.GET("/health", s.healthHandler)
	v1 := router.Group("/api/v1")
	v1.POST("/deidentify", s.deidentifyHandler)
	v1.GET("/directives", s.directivesHandler)

	return s
}

// Handler returns the server's HTTP handler for mounting on an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}
