// README: Liveness and API info endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/config"
	"travelplanner/internal/service"
)

// Endpoints lists the public API routes advertised by GET /.
var Endpoints = []string{"/health", "/generate-plan", "/chat", "/plan-trip"}

// StatusReporter exposes the planner's configuration snapshot.
type StatusReporter interface {
	Status() service.Status
}

type SystemHandler struct {
	status StatusReporter
	creds  config.CredentialPresence
}

func NewSystemHandler(status StatusReporter, creds config.CredentialPresence) *SystemHandler {
	return &SystemHandler{status: status, creds: creds}
}

// Health handles GET /health. It always reports healthy; configuration gaps show up in the flags.
func (h *SystemHandler) Health(c *gin.Context) {
	s := h.status.Status()
	writeJSON(c, http.StatusOK, gin.H{
		"status":                "healthy",
		"gemini_api_configured": s.GeneratorConfigured,
		"llm_provider":          s.Provider,
		"flights_enabled":       s.FlightsEnabled,
		"insights_enabled":      s.InsightsEnabled,
		"environment_vars": gin.H{
			"GEMINI_API_KEY": h.creds.GeminiAPIKey,
			"GOOGLE_API_KEY": h.creds.GoogleAPIKey,
			"SERP_API_KEY":   h.creds.SerpAPIKey,
		},
	})
}

// Root handles GET /.
func (h *SystemHandler) Root(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"message":           "Travel Planning AI API is running",
		"status":            "healthy",
		"gemini_configured": h.status.Status().GeneratorConfigured,
		"endpoints":         Endpoints,
	})
}
