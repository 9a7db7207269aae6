package request_models

// RerankCandidate mirrors the generator output shape: optional raw signals,
// denormalized metadata. Absent signals stay nil so the scorer can apply
// its neutral default.
type RerankCandidate struct {
	PoiID      int64    `json:"poi_id"`
	Name       string   `json:"name"`
	City       string   `json:"city"`
	Country    string   `json:"country"`
	Type       string   `json:"type"`
	Themes     []string `json:"themes,omitempty"`
	Semantic   *float64 `json:"semantic,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
	Rank       *int     `json:"rank,omitempty"`
}

type RerankUserContext struct {
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Language  string   `json:"language"`
	Interests []string `json:"interests"`
}

type RerankWeights struct {
	Semantic  *float64 `json:"semantic,omitempty"`
	Distance  *float64 `json:"distance,omitempty"`
	Category  *float64 `json:"category,omitempty"`
	Diversity *float64 `json:"diversity,omitempty"`
}

type RerankRequest struct {
	Candidates  []RerankCandidate `json:"candidates" binding:"required"`
	UserContext RerankUserContext `json:"user_context"`
	Weights     *RerankWeights    `json:"weights,omitempty"`
	Persist     bool              `json:"persist,omitempty"`
}
