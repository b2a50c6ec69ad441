package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthlens/healthlens-backend/internal/data/repos"
	"github.com/healthlens/healthlens-backend/internal/http/response"
	"github.com/healthlens/healthlens-backend/internal/platform/logger"
)

type InfluencerHandler struct {
	influencers repos.InfluencerRepo
	claims      repos.ClaimRepo
	log         *logger.Logger
	devMode     bool
}

func NewInfluencerHandler(influencers repos.InfluencerRepo, claims repos.ClaimRepo, log *logger.Logger, devMode bool) *InfluencerHandler {
	return &InfluencerHandler{
		influencers: influencers,
		claims:      claims,
		log:         log.With("handler", "InfluencerHandler"),
		devMode:     devMode,
	}
}

// GET /api/influencers
func (ih *InfluencerHandler) List(c *gin.Context) {
	list, err := ih.influencers.List(c.Request.Context(), nil)
	if err != nil {
		ih.log.Error("Listing influencers failed", "error", err)
		response.RespondError(c, ih.devMode, "Error fetching influencers", err)
		return
	}
	response.RespondOK(c, list)
}

// GET /api/influencers/:username
func (ih *InfluencerHandler) Get(c *gin.Context) {
	username := c.Param("username")

	influencer, err := ih.influencers.GetByUsername(c.Request.Context(), nil, username)
	if err != nil {
		ih.log.Error("Fetching influencer failed", "error", err, "username", username)
		response.RespondError(c, ih.devMode, "Error fetching influencer", err)
		return
	}
	if influencer == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Influencer not found"})
		return
	}
	response.RespondOK(c, influencer)
}

// GET /api/influencers/:username/claims
func (ih *InfluencerHandler) ListClaims(c *gin.Context) {
	username := c.Param("username")

	influencer, err := ih.influencers.GetByUsername(c.Request.Context(), nil, username)
	if err != nil {
		ih.log.Error("Fetching influencer failed", "error", err, "username", username)
		response.RespondError(c, ih.devMode, "Error fetching influencer claims", err)
		return
	}
	if influencer == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Influencer not found"})
		return
	}

	claims, err := ih.claims.ListByInfluencerID(c.Request.Context(), nil, influencer.ID)
	if err != nil {
		ih.log.Error("Listing claims failed", "error", err, "username", username)
		response.RespondError(c, ih.devMode, "Error fetching influencer claims", err)
		return
	}
	response.RespondOK(c, claims)
}
