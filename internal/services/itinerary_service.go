package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"tourplan/internal/models/request_models"
	"tourplan/internal/models/response_models"
	"tourplan/pkg/utils"
)

// AssemblerConfig holds the tunables of itinerary assembly. Pool thresholds
// decide how many days a trip gets; Rand, when set, shuffles candidates
// before selection to break ties between equal scores.
type AssemblerConfig struct {
	PerDay           int
	MaxDays          int
	LongTripPool     int
	FourDayPool      int
	ThreeDayPool     int
	DefaultStartTime string
	DefaultEndTime   string
	Rand             *rand.Rand
}

func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		PerDay:           5,
		MaxDays:          6,
		LongTripPool:     25,
		FourDayPool:      20,
		ThreeDayPool:     15,
		DefaultStartTime: "09:00",
		DefaultEndTime:   "22:00",
	}
}

type TimeSlot struct {
	Start string
	End   string
}

// BuildTimeSlots tiles n slots between start and end, aligned to :00 or :30.
// The step is the total span divided by n, rounded up to the next half hour
// and never under 30 minutes. The final slot is clamped to the end time and
// zero-width slots pad the tail when the day runs out early.
func BuildTimeSlots(startTime, endTime string, n int) ([]TimeSlot, error) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return nil, err
	}

	start = utils.SnapDownHalfHour(start)
	end = utils.SnapUpHalfHour(end)

	totalMinutes := int(end.Sub(start).Minutes())
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if n <= 0 || totalMinutes == 0 {
		return []TimeSlot{}, nil
	}

	rawStep := int(math.Ceil(float64(totalMinutes) / float64(n)))
	step := int(math.Ceil(float64(rawStep)/30)) * 30
	if step < 30 {
		step = 30
	}

	slots := make([]TimeSlot, 0, n)
	cur := start
	for i := 0; i < n; i++ {
		next := cur.Add(time.Duration(step) * time.Minute)
		if i == n-1 || next.After(end) {
			next = end
		}
		slots = append(slots, TimeSlot{Start: utils.FormatClock(cur), End: utils.FormatClock(next)})
		cur = next
		if !cur.Before(end) {
			break
		}
	}
	endStr := utils.FormatClock(end)
	for len(slots) < n {
		slots = append(slots, TimeSlot{Start: endStr, End: endStr})
	}
	return slots[:n], nil
}

func syntheticHotel() Candidate {
	return Candidate{
		PoiID:  -1,
		Name:   "Hotel check-in / rest",
		Type:   "hotel",
		Themes: []string{},
		Score:  0.0,
	}
}

func syntheticFreeTime(city, country string) Candidate {
	return Candidate{
		PoiID:       -2,
		Name:        "Free time / transit",
		Type:        "free time",
		Description: "Buffer time for rest or transit",
		Themes:      []string{},
		Score:       0.0,
		City:        city,
		Country:     country,
	}
}

func hasTheme(c Candidate, theme string) bool {
	for _, t := range c.Themes {
		if t == theme {
			return true
		}
	}
	return false
}

// SelectWithHotel picks planSize candidates anchored on the best-scoring
// hotel. The rest fill in order of (theme match, score), with at most one
// duplicate per category. When no hotel exists a synthetic placeholder takes
// position zero, and at most one hotel survives in the result.
func SelectWithHotel(candidates []Candidate, planSize int, theme string) []Candidate {
	if planSize < 2 {
		planSize = 2
	}

	hotels := []Candidate{}
	for _, c := range candidates {
		if c.Type == "hotel" {
			hotels = append(hotels, c)
		}
	}
	sort.SliceStable(hotels, func(i, j int) bool {
		return hotels[i].Score > hotels[j].Score
	})

	selected := []Candidate{}
	seenIDs := map[int64]bool{}

	if len(hotels) > 0 {
		selected = append(selected, hotels[0])
		seenIDs[hotels[0].PoiID] = true
	}

	pool := []Candidate{}
	for _, c := range candidates {
		if !seenIDs[c.PoiID] {
			pool = append(pool, c)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		themeI, themeJ := 0, 0
		if theme != "" && hasTheme(pool[i], theme) {
			themeI = 1
		}
		if theme != "" && hasTheme(pool[j], theme) {
			themeJ = 1
		}
		if themeI != themeJ {
			return themeI > themeJ
		}
		return pool[i].Score > pool[j].Score
	})

	seenTypes := map[string]bool{}
	if len(hotels) > 0 {
		seenTypes["hotel"] = true
	}
	for _, c := range pool {
		if len(selected) >= planSize {
			break
		}
		if seenIDs[c.PoiID] {
			continue
		}
		if !seenTypes[c.Type] {
			selected = append(selected, c)
			seenTypes[c.Type] = true
			seenIDs[c.PoiID] = true
			continue
		}
		// allow at most one duplicate of a type when slots run short
		dup := 0
		for _, s := range selected {
			if s.Type == c.Type {
				dup++
			}
		}
		if dup < 2 {
			selected = append(selected, c)
			seenIDs[c.PoiID] = true
		}
	}

	hasHotel := false
	for _, s := range selected {
		if s.Type == "hotel" {
			hasHotel = true
			break
		}
	}
	if !hasHotel {
		selected = append([]Candidate{syntheticHotel()}, selected...)
	}

	hotelCount := 0
	for _, s := range selected {
		if s.Type == "hotel" {
			hotelCount++
		}
	}
	if hotelCount > 1 {
		var firstHotel Candidate
		nonHotels := []Candidate{}
		found := false
		for _, s := range selected {
			if s.Type == "hotel" {
				if !found {
					firstHotel = s
					found = true
				}
				continue
			}
			nonHotels = append(nonHotels, s)
		}
		if len(nonHotels) > planSize-1 {
			nonHotels = nonHotels[:planSize-1]
		}
		selected = append([]Candidate{firstHotel}, nonHotels...)
	}

	if len(selected) > planSize {
		selected = selected[:planSize]
	}
	return selected
}

type ItineraryServiceInterface interface {
	BuildItinerary(ctx context.Context, req request_models.BuildItineraryRequest) (response_models.Itinerary, error)
	// BuildDayPlan is the quick single-day variant: one ordered list of
	// timed slots, no day split.
	BuildDayPlan(ctx context.Context, req request_models.BuildItineraryRequest, planSize int) ([]response_models.ItinerarySlot, error)
}

type ItineraryService struct {
	catalog  CatalogServiceInterface
	themes   ThemeServiceInterface
	resolver ThemeResolver
	config   AssemblerConfig
	logger   *zap.Logger
}

func NewItineraryService(
	catalog CatalogServiceInterface,
	themes ThemeServiceInterface,
	resolver ThemeResolver,
	config AssemblerConfig,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		catalog:  catalog,
		themes:   themes,
		resolver: resolver,
		config:   config,
		logger:   logger,
	}
}

func (s *ItineraryService) candidatesForLocation(ctx context.Context, city, country, theme string) ([]Candidate, error) {
	pois, err := s.catalog.POIsForLocation(ctx, city, country)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(pois))
	for _, poi := range pois {
		baseType := s.themes.NormalizeCategory(poi.Type)
		themes := s.resolver.Resolve(baseType, poi.Name, poi.Description, nil)

		score := 1.0
		if theme != "" && containsString(themes, theme) {
			if boost, ok := s.themes.ThemeBoost(theme); ok {
				score += boost
			}
		}

		candidates = append(candidates, Candidate{
			PoiID:       poi.PoiID,
			Name:        poi.Name,
			Type:        baseType,
			Description: poi.Description,
			City:        poi.City,
			Country:     poi.Country,
			Themes:      themes,
			Score:       score,
		})
	}

	if s.config.Rand != nil {
		s.config.Rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}
	return candidates, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (s *ItineraryService) dayCount(pool int) int {
	switch {
	case pool >= s.config.LongTripPool:
		return min(s.config.MaxDays, max(5, pool/s.config.PerDay))
	case pool >= s.config.FourDayPool:
		return 4
	case pool >= s.config.ThreeDayPool:
		return 3
	default:
		return 3
	}
}

func (s *ItineraryService) timeWindow(req request_models.BuildItineraryRequest) (string, string) {
	start := req.StartTime
	if _, err := utils.ParseClock(start); err != nil {
		start = s.config.DefaultStartTime
	}
	end := req.EndTime
	if _, err := utils.ParseClock(end); err != nil {
		end = s.config.DefaultEndTime
	}
	return start, end
}

func emptyItinerary(city, reason string) response_models.Itinerary {
	return response_models.Itinerary{
		DaysCount:        0,
		Name:             fmt.Sprintf("Trip in %s", city),
		ShortDescription: reason,
		Days:             []response_models.ItineraryDay{},
	}
}

func (s *ItineraryService) BuildItinerary(ctx context.Context, req request_models.BuildItineraryRequest) (response_models.Itinerary, error) {
	s.logger.Info("building itinerary",
		zap.String("city", req.City),
		zap.String("country", req.Country),
		zap.String("theme", req.Theme))

	if err := s.catalog.EnsureLoaded(ctx); err != nil {
		return emptyItinerary(req.City, "Failed to load data"), nil
	}

	candidates, err := s.candidatesForLocation(ctx, req.City, req.Country, req.Theme)
	if err != nil {
		return emptyItinerary(req.City, "Failed to load data"), nil
	}
	if len(candidates) == 0 {
		return emptyItinerary(req.City,
			fmt.Sprintf("No places found for %s, %s", req.City, req.Country)), nil
	}

	daysCount := s.dayCount(len(candidates))
	perDay := s.config.PerDay
	totalNeeded := daysCount * perDay

	selected := SelectWithHotel(candidates, totalNeeded, req.Theme)
	sort.SliceStable(selected, func(i, j int) bool {
		hotelI, hotelJ := selected[i].Type == "hotel", selected[j].Type == "hotel"
		if hotelI != hotelJ {
			return hotelI
		}
		return selected[i].Score > selected[j].Score
	})

	if len(selected) < totalNeeded {
		selectedIDs := map[int64]bool{}
		for _, c := range selected {
			selectedIDs[c.PoiID] = true
		}
		remaining := []Candidate{}
		for _, c := range candidates {
			if !selectedIDs[c.PoiID] {
				remaining = append(remaining, c)
			}
		}
		sort.SliceStable(remaining, func(i, j int) bool {
			return remaining[i].Score > remaining[j].Score
		})
		for _, c := range remaining {
			if len(selected) >= totalNeeded {
				break
			}
			selected = append(selected, c)
		}
		for len(selected) < totalNeeded {
			selected = append(selected, syntheticFreeTime(req.City, req.Country))
		}
	}

	startTime, endTime := s.timeWindow(req)

	days := make([]response_models.ItineraryDay, 0, daysCount)
	for dayIndex := 0; dayIndex < daysCount; dayIndex++ {
		dayPlaces := selected[dayIndex*perDay : (dayIndex+1)*perDay]
		slots, err := BuildTimeSlots(startTime, endTime, len(dayPlaces))
		if err != nil {
			return emptyItinerary(req.City, "Failed to load data"), nil
		}

		places := make([]response_models.ItinerarySlot, 0, len(dayPlaces))
		for i, c := range dayPlaces {
			places = append(places, response_models.ItinerarySlot{
				ID:       c.PoiID,
				Name:     c.Name,
				Category: c.Type,
				Start:    slots[i].Start,
				End:      slots[i].End,
				Day:      dayIndex + 1,
				Score:    round3(c.Score),
			})
		}
		days = append(days, response_models.ItineraryDay{Day: dayIndex + 1, Places: places})
	}

	return response_models.Itinerary{
		DaysCount:        daysCount,
		Name:             generateTourName(req.City, daysCount),
		ShortDescription: generateTourDescription(req.City, req.Country, daysCount, perDay),
		Days:             days,
	}, nil
}

func (s *ItineraryService) BuildDayPlan(ctx context.Context, req request_models.BuildItineraryRequest, planSize int) ([]response_models.ItinerarySlot, error) {
	if planSize <= 0 {
		planSize = 6
	}

	if err := s.catalog.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	candidates, err := s.candidatesForLocation(ctx, req.City, req.Country, req.Theme)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []response_models.ItinerarySlot{}, nil
	}

	selected := SelectWithHotel(candidates, planSize, req.Theme)
	sort.SliceStable(selected, func(i, j int) bool {
		hotelI, hotelJ := selected[i].Type == "hotel", selected[j].Type == "hotel"
		if hotelI != hotelJ {
			return hotelI
		}
		return selected[i].Score > selected[j].Score
	})

	startTime, endTime := s.timeWindow(req)
	slots, err := BuildTimeSlots(startTime, endTime, len(selected))
	if err != nil {
		return nil, err
	}

	out := make([]response_models.ItinerarySlot, 0, len(selected))
	for i, c := range selected {
		out = append(out, response_models.ItinerarySlot{
			ID:       c.PoiID,
			Name:     c.Name,
			Category: c.Type,
			Start:    slots[i].Start,
			End:      slots[i].End,
			Day:      1,
			Score:    round3(c.Score),
		})
	}
	return out, nil
}

var famousCityNames = map[string]string{
	"paris":     "Parisian Adventure",
	"london":    "London Explorer",
	"tokyo":     "Tokyo Discovery",
	"new york":  "NYC Experience",
	"rome":      "Roman Holiday",
	"cairo":     "Cairo Explorer",
	"dubai":     "Dubai Luxury",
	"barcelona": "Barcelona Vibes",
	"sydney":    "Sydney Explorer",
	"mumbai":    "Mumbai Discovery",
}

// titleCase uppercases the first letter of each run of letters and lowercases
// the rest. Any non-letter starts a new word.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func generateTourName(city string, daysCount int) string {
	if name, ok := famousCityNames[strings.ToLower(city)]; ok {
		return fmt.Sprintf("%d-Day %s", daysCount, name)
	}
	return fmt.Sprintf("%d-Day %s Discovery", daysCount, titleCase(city))
}

var durationDescriptions = map[int]string{
	3: "Perfect weekend getaway",
	4: "Comprehensive exploration",
	5: "Deep cultural immersion",
	6: "Ultimate travel experience",
}

func generateTourDescription(city, country string, daysCount, perDay int) string {
	durationDesc, ok := durationDescriptions[daysCount]
	if !ok {
		durationDesc = fmt.Sprintf("%d-day adventure", daysCount)
	}
	totalPlaces := daysCount * perDay
	return fmt.Sprintf("A %s in %s, %s. Discover %d carefully selected places across %d days, with %d unique experiences each day.",
		durationDesc, titleCase(city), titleCase(country), totalPlaces, daysCount, perDay)
}
