package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthlens/healthlens-backend/internal/http/response"
)

// EnvStatus reports which external integrations are configured. Only
// presence flags ever leave the process, never the values themselves.
type EnvStatus struct {
	GroqConfigured     bool
	OpenAIConfigured   bool
	DatabaseConfigured bool
	AppEnv             string
}

type HealthHandler struct {
	env EnvStatus
}

func NewHealthHandler(env EnvStatus) *HealthHandler {
	return &HealthHandler{env: env}
}

// GET /api/health
func (hh *HealthHandler) Health(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "ok"})
}

// GET /api/test
func (hh *HealthHandler) Diagnostics(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":      "ok",
		"environment": hh.env.AppEnv,
		"services": gin.H{
			"groq":     configured(hh.env.GroqConfigured),
			"openai":   configured(hh.env.OpenAIConfigured),
			"database": configured(hh.env.DatabaseConfigured),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
