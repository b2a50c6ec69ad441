package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthlens/healthlens-backend/internal/http/response"
	"github.com/healthlens/healthlens-backend/internal/platform/apierr"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
	"github.com/healthlens/healthlens-backend/internal/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
	log             *logger.Logger
	devMode         bool
}

func NewAnalysisHandler(analysisService services.AnalysisService, log *logger.Logger, devMode bool) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		log:             log.With("handler", "AnalysisHandler"),
		devMode:         devMode,
	}
}

// POST /api/analysis/claim
// body: { "claimText": "...", "influencerId": "<uuid, optional>" }
func (ah *AnalysisHandler) AnalyzeClaim(c *gin.Context) {
	var req struct {
		ClaimText    string `json:"claimText"`
		InfluencerID string `json:"influencerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, ah.devMode, "Invalid request body", apierr.Validation("invalid_body", err))
		return
	}

	// Validation is terminal: no gateway or storage call happens on a 400.
	if strings.TrimSpace(req.ClaimText) == "" {
		response.RespondError(c, ah.devMode, "claimText is required", apierr.Validation("missing_claim_text", nil))
		return
	}

	var influencerID *uuid.UUID
	if strings.TrimSpace(req.InfluencerID) != "" {
		id, err := uuid.Parse(req.InfluencerID)
		if err != nil {
			response.RespondError(c, ah.devMode, "influencerId must be a valid UUID", apierr.Validation("invalid_influencer_id", err))
			return
		}
		influencerID = &id
	}

	result, err := ah.analysisService.AnalyzeClaim(c.Request.Context(), req.ClaimText, influencerID)
	if err != nil {
		ah.log.Error("Claim analysis failed", "error", err)
		response.RespondError(c, ah.devMode, "Error analyzing claim", err)
		return
	}

	body := gin.H{"success": true, "analysis": result.Analysis}
	if result.Claim != nil {
		body["claim"] = result.Claim
	}
	if result.Warning != "" {
		body["warning"] = result.Warning
	}
	response.RespondOK(c, body)
}

// POST /api/analysis/influencer
// body: { "username": "...", "platform": "...", "posts": ["...", ...] }
func (ah *AnalysisHandler) AnalyzeInfluencer(c *gin.Context) {
	var req struct {
		Username string   `json:"username"`
		Platform string   `json:"platform"`
		Posts    []string `json:"posts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, ah.devMode, "Invalid request body", apierr.Validation("invalid_body", err))
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Platform) == "" || req.Posts == nil {
		response.RespondError(c, ah.devMode, "username, platform and posts are required", apierr.Validation("missing_fields", nil))
		return
	}

	result, err := ah.analysisService.AnalyzeInfluencer(c.Request.Context(), req.Username, req.Platform, req.Posts)
	if err != nil {
		ah.log.Error("Influencer analysis failed", "error", err, "username", req.Username)
		response.RespondError(c, ah.devMode, "Error analyzing influencer", err)
		return
	}

	body := gin.H{"success": true, "analysis": result.Analysis}
	if result.Influencer != nil {
		body["influencer"] = result.Influencer
	}
	if result.Warning != "" {
		body["warning"] = result.Warning
	}
	response.RespondOK(c, body)
}
