package handlers

import (
	"net/http"

	"github.com/ramosdigital/contact-api/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	emailProvider string
}

func NewHealthHandler(emailProvider string) *HealthHandler {
	return &HealthHandler{emailProvider: emailProvider}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	EmailProvider string `json:"email_provider"`
}

// Check reports liveness. The service keeps no state, so there is nothing to ping.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       version.Version,
		EmailProvider: h.emailProvider,
	})
}

// Version returns the build information.
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.GetBuildInfo())
}
