package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourplan/internal/models/request_models"
	"tourplan/internal/services"
	"tourplan/pkg/utils"
)

type POIsController struct {
	poiService       services.PoiServiceInterface
	embeddingService services.EmbeddingServiceInterface
}

func NewPOIsController(
	poiService services.PoiServiceInterface,
	embeddingService services.EmbeddingServiceInterface,
) *POIsController {
	return &POIsController{
		poiService:       poiService,
		embeddingService: embeddingService,
	}
}

func (p *POIsController) CreatePoi(c *gin.Context) {
	var req request_models.CreatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name, city and country are required")
		return
	}

	poiID, err := p.poiService.CreatePoi(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"poi_id": poiID}, "POI created successfully")
}

// BackfillEmbeddings re-embeds every POI text for one language.
func (p *POIsController) BackfillEmbeddings(c *gin.Context) {
	lang := c.DefaultQuery("lang", "en")

	indexed, err := p.embeddingService.Backfill(c.Request.Context(), lang)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"indexed": indexed, "lang": lang}, "Backfill finished")
}
