package request_models

type BuildItineraryRequest struct {
	City      string `json:"city" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Language  string `json:"language"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Theme     string `json:"theme"`
}
