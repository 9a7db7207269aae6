package request_models

type CreatePoiRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	City        string   `json:"city" binding:"required"`
	Country     string   `json:"country" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	Texts []PoiTextInput `json:"texts"`
}

type PoiTextInput struct {
	Lang             string `json:"lang" binding:"required"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}
