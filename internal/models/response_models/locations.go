package response_models

type LocationResponse struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	POICount int    `json:"poi_count"`
}

type ScoredCandidateResponse struct {
	PoiID          int64   `json:"poi_id"`
	Name           string  `json:"name,omitempty"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	Type           string  `json:"type"`
	Semantic       float64 `json:"semantic"`
	Distance       float64 `json:"distance"`
	CategoryScore  float64 `json:"category_score"`
	DiversityScore float64 `json:"diversity_score"`
	FinalScore     float64 `json:"final_score"`
	Explanation    string  `json:"explanation"`
}

type ThemeResponse struct {
	Name     string   `json:"name"`
	Boost    float64  `json:"boost"`
	Keywords []string `json:"keywords"`
}
