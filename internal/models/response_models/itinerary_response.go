package response_models

// ItinerarySlot is one scheduled place (or synthetic filler) inside a day.
// Synthetic entries use id -1 (hotel placeholder) and -2 (free time).
type ItinerarySlot struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Day      int     `json:"day"`
	Score    float64 `json:"score"`
}

type ItineraryDay struct {
	Day    int             `json:"day"`
	Places []ItinerarySlot `json:"places"`
}

type Itinerary struct {
	DaysCount        int            `json:"days_count"`
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	Days             []ItineraryDay `json:"days"`
}
