package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourplan/internal/models/request_models"
	"tourplan/internal/services"
	"tourplan/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

func (ic *ItineraryController) BuildItinerary(c *gin.Context) {
	var req request_models.BuildItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "city and country are required")
		return
	}

	itinerary, err := ic.itineraryService.BuildItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary built successfully")
}

// QuickItinerary is the single-day variant driven by query parameters.
func (ic *ItineraryController) QuickItinerary(c *gin.Context) {
	city := c.Query("city")
	country := c.Query("country")
	if city == "" || country == "" {
		utils.RespondError(c, http.StatusBadRequest, "city and country are required")
		return
	}

	planSizeStr := c.DefaultQuery("plan_size", "6")
	planSize, err := strconv.Atoi(planSizeStr)
	if err != nil || planSize < 1 || planSize > 20 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid plan size (must be 1-20)")
		return
	}

	req := request_models.BuildItineraryRequest{
		City:      city,
		Country:   country,
		Language:  c.DefaultQuery("language", "en"),
		StartTime: c.DefaultQuery("start_time", "09:00"),
		EndTime:   c.DefaultQuery("end_time", "22:00"),
		Theme:     c.Query("theme"),
	}

	slots, err := ic.itineraryService.BuildDayPlan(c.Request.Context(), req, planSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"slots": slots}, "Day plan built successfully")
}
