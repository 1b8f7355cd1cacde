package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/wrangle/pkg/directive"
	"github.com/codeready-toolchain/wrangle/pkg/dlp"
	"github.com/codeready-toolchain/wrangle/pkg/version"
)

// healthHandler handles GET /health. The server holds no local state worth
// checking; the DLP service itself is deliberately not probed so an
// external outage does not restart this process.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": version.Full(),
	})
}

// directivesHandler handles GET /api/v1/directives.
func (s *Server) directivesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, DirectivesResponse{Directives: s.registry.Names()})
}

// deidentifyHandler handles POST /api/v1/deidentify: it instantiates the
// named directive, initializes it from the request, runs the batch, and
// returns the transformed rows.
func (s *Server) deidentifyHandler(c *gin.Context) {
	var req DeidentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	d, err := s.registry.Create(req.Directive)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	defer d.Destroy()

	if err := d.Initialize(c.Request.Context(), req.arguments()); err != nil {
		status := http.StatusBadRequest
		var initErr *dlp.InitError
		if errors.As(err, &initErr) {
			status = http.StatusBadGateway
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	rows, err := d.Execute(c.Request.Context(), req.Rows)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DeidentifyResponse{Rows: rows})
}

// arguments converts the request body into the directive argument set.
func (r *DeidentifyRequest) arguments() directive.Arguments {
	args := directive.Arguments{
		"column":    r.Column,
		"info-type": strings.Join(r.InfoTypes, ","),
	}
	if r.MaskChar != "" {
		args["mask-char"] = r.MaskChar
	}
	if r.Count > 0 {
		args["count"] = strconv.Itoa(r.Count)
	}
	if r.Direction != "" {
		args["direction"] = r.Direction
	}
	if r.Likelihood != "" {
		args["likelihood"] = r.Likelihood
	}
	if r.ProjectID != "" {
		args["project-id"] = r.ProjectID
	}
	if r.CredentialsFile != "" {
		args["service-account-file-path"] = r.CredentialsFile
	}
	return args
}
