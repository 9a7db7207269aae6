package controllers

import (
	"github.com/gin-gonic/gin"

	"tourplan/internal/models/response_models"
	"tourplan/internal/services"
	"tourplan/pkg/utils"
)

type LocationsController struct {
	catalogService services.CatalogServiceInterface
}

func NewLocationsController(catalogService services.CatalogServiceInterface) *LocationsController {
	return &LocationsController{
		catalogService: catalogService,
	}
}

func (lc *LocationsController) ListLocations(c *gin.Context) {
	locations, err := lc.catalogService.AvailableLocations(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, toLocationResponses(locations), "Locations fetched successfully")
}

func (lc *LocationsController) SuggestLocations(c *gin.Context) {
	partialCity := c.Query("city")
	partialCountry := c.Query("country")

	suggestions, err := lc.catalogService.LocationSuggestions(c.Request.Context(), partialCity, partialCountry)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, toLocationResponses(suggestions), "Suggestions fetched successfully")
}

func toLocationResponses(locations []services.LocationCount) []response_models.LocationResponse {
	out := make([]response_models.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, response_models.LocationResponse{
			City:     loc.City,
			Country:  loc.Country,
			POICount: loc.Count,
		})
	}
	return out
}
