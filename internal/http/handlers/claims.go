package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthlens/healthlens-backend/internal/http/response"
	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
	"github.com/healthlens/healthlens-backend/internal/services"
)

type ClaimsHandler struct {
	discoveryService services.ClaimDiscoveryService
	log              *logger.Logger
	devMode          bool
}

func NewClaimsHandler(discoveryService services.ClaimDiscoveryService, log *logger.Logger, devMode bool) *ClaimsHandler {
	return &ClaimsHandler{
		discoveryService: discoveryService,
		log:              log.With("handler", "ClaimsHandler"),
		devMode:          devMode,
	}
}

// POST /api/claims/extract
// body: { "content": "..." }
func (ch *ClaimsHandler) ExtractClaims(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, ch.devMode, "Invalid request body", apierr.Validation("invalid_body", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.RespondError(c, ch.devMode, "content is required", apierr.Validation("missing_content", nil))
		return
	}

	claims, err := ch.discoveryService.ExtractHealthClaims(c.Request.Context(), req.Content)
	if err != nil {
		ch.log.Error("Claim extraction failed", "error", err)
		response.RespondError(c, ch.devMode, "Error extracting claims", err)
		return
	}

	response.RespondOK(c, gin.H{"success": true, "claims": claims})
}

// POST /api/influencers/:username/content
// body: { "content": "..." }
func (ch *ClaimsHandler) ProcessInfluencerContent(c *gin.Context) {
	username := c.Param("username")

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, ch.devMode, "Invalid request body", apierr.Validation("invalid_body", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.RespondError(c, ch.devMode, "content is required", apierr.Validation("missing_content", nil))
		return
	}

	claims, err := ch.discoveryService.ProcessInfluencerContent(c.Request.Context(), username, req.Content)
	if err != nil {
		ch.log.Error("Processing influencer content failed", "error", err, "username", username)
		response.RespondError(c, ch.devMode, "Error processing influencer content", err)
		return
	}

	response.RespondOK(c, gin.H{
		"success":         true,
		"claims":          claims,
		"claimsProcessed": len(claims),
	})
}
