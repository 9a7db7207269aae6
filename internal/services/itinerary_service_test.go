package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourplan/internal/models/request_models"
	"tourplan/internal/models/response_models"
	"tourplan/pkg/utils"
)

type fakeCatalog struct {
	pois    []POIInfo
	loadErr error
}

func (f *fakeCatalog) EnsureLoaded(ctx context.Context) error { return f.loadErr }
func (f *fakeCatalog) Reload(ctx context.Context) error       { return f.loadErr }

func (f *fakeCatalog) POIsForLocation(ctx context.Context, city, country string) ([]POIInfo, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := []POIInfo{}
	for _, p := range f.pois {
		if strings.EqualFold(p.City, city) && strings.EqualFold(p.Country, country) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) AvailableLocations(ctx context.Context) ([]LocationCount, error) {
	return []LocationCount{}, f.loadErr
}

func (f *fakeCatalog) LocationSuggestions(ctx context.Context, partialCity, partialCountry string) ([]LocationCount, error) {
	return []LocationCount{}, f.loadErr
}

func (f *fakeCatalog) AllPOIs(ctx context.Context) ([]POIInfo, error) {
	return f.pois, f.loadErr
}

func newTestItineraryService(catalog CatalogServiceInterface) ItineraryServiceInterface {
	themes := NewThemeService()
	return NewItineraryService(catalog, themes, NewKeywordThemeResolver(themes), DefaultAssemblerConfig(), zap.NewNop())
}

func isHalfHourAligned(clock string) bool {
	return strings.HasSuffix(clock, ":00") || strings.HasSuffix(clock, ":30")
}

func TestBuildTimeSlots(t *testing.T) {
	t.Run("full day split into six slots", func(t *testing.T) {
		slots, err := BuildTimeSlots("09:00", "22:00", 6)
		require.NoError(t, err)
		require.Len(t, slots, 6)

		assert.Equal(t, "09:00", slots[0].Start)
		assert.Equal(t, "22:00", slots[5].End)
		for i, s := range slots {
			assert.True(t, isHalfHourAligned(s.Start), "slot %d start %s", i, s.Start)
			assert.True(t, isHalfHourAligned(s.End), "slot %d end %s", i, s.End)
			if i > 0 {
				assert.Equal(t, slots[i-1].End, s.Start)
			}
		}
	})

	t.Run("ragged window snaps to half hours", func(t *testing.T) {
		slots, err := BuildTimeSlots("09:15", "21:45", 4)
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.Equal(t, "09:00", slots[0].Start)
		assert.Equal(t, "22:00", slots[3].End)
	})

	t.Run("short window pads zero-width slots", func(t *testing.T) {
		slots, err := BuildTimeSlots("09:00", "10:00", 4)
		require.NoError(t, err)
		require.Len(t, slots, 4)
		assert.Equal(t, TimeSlot{Start: "09:30", End: "10:00"}, slots[1])
		assert.Equal(t, TimeSlot{Start: "10:00", End: "10:00"}, slots[2])
		assert.Equal(t, TimeSlot{Start: "10:00", End: "10:00"}, slots[3])
	})

	t.Run("degenerate inputs yield no slots", func(t *testing.T) {
		slots, err := BuildTimeSlots("09:00", "09:00", 3)
		require.NoError(t, err)
		assert.Empty(t, slots)

		slots, err = BuildTimeSlots("09:00", "22:00", 0)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid clock errors", func(t *testing.T) {
		_, err := BuildTimeSlots("nine", "22:00", 3)
		assert.Error(t, err)
	})
}

func TestSelectWithHotelAnchorsBestHotel(t *testing.T) {
	candidates := []Candidate{
		{PoiID: 1, Type: "hotel", Score: 1.0},
		{PoiID: 2, Type: "hotel", Score: 1.3},
		{PoiID: 3, Type: "restaurant", Score: 1.2},
		{PoiID: 4, Type: "tourist place", Score: 1.1},
		{PoiID: 5, Type: "shop", Score: 1.0},
	}

	selected := SelectWithHotel(candidates, 4, "")
	require.NotEmpty(t, selected)
	assert.Equal(t, int64(2), selected[0].PoiID)

	hotelCount := 0
	for _, s := range selected {
		if s.Type == "hotel" {
			hotelCount++
		}
	}
	assert.Equal(t, 1, hotelCount)
	assert.LessOrEqual(t, len(selected), 4)
}

func TestSelectWithHotelSyntheticPlaceholder(t *testing.T) {
	candidates := make([]Candidate, 0, 10)
	for i := 1; i <= 10; i++ {
		candidates = append(candidates, Candidate{
			PoiID: int64(i),
			Name:  fmt.Sprintf("Sight %d", i),
			Type:  "tourist place",
			Score: 1.0,
		})
	}

	selected := SelectWithHotel(candidates, 6, "")
	require.NotEmpty(t, selected)

	assert.Equal(t, int64(-1), selected[0].PoiID)
	assert.Equal(t, "hotel", selected[0].Type)
	assert.Equal(t, "Hotel check-in / rest", selected[0].Name)
	assert.Equal(t, 0.0, selected[0].Score)

	// at most one duplicate of any category besides the anchor
	perType := map[string]int{}
	for _, s := range selected {
		perType[s.Type]++
	}
	assert.LessOrEqual(t, perType["tourist place"], 2)
}

func TestSelectWithHotelThemePriority(t *testing.T) {
	candidates := []Candidate{
		{PoiID: 1, Type: "restaurant", Score: 1.3},
		{PoiID: 2, Type: "tourist place", Score: 1.0, Themes: []string{"cultural"}},
		{PoiID: 3, Type: "shop", Score: 1.2},
	}

	selected := SelectWithHotel(candidates, 4, "cultural")
	require.NotEmpty(t, selected)

	// synthetic hotel first, then the theme match ahead of higher scores
	assert.Equal(t, int64(-1), selected[0].PoiID)
	assert.Equal(t, int64(2), selected[1].PoiID)
}

func TestSelectWithHotelMinimumPlanSize(t *testing.T) {
	candidates := []Candidate{
		{PoiID: 1, Type: "restaurant", Score: 1.0},
		{PoiID: 2, Type: "shop", Score: 1.0},
	}

	// planSize below 2 is raised to 2
	selected := SelectWithHotel(candidates, 1, "")
	assert.LessOrEqual(t, len(selected), 2)
	assert.NotEmpty(t, selected)
}

func cairoCatalog(n int) *fakeCatalog {
	types := []string{"hotel", "restaurant", "museum", "park", "shopping mall", "nightclub"}
	pois := make([]POIInfo, 0, n)
	for i := 1; i <= n; i++ {
		pois = append(pois, POIInfo{
			PoiID:       int64(i),
			Name:        fmt.Sprintf("Cairo Spot %d", i),
			Type:        types[i%len(types)],
			Description: "A place worth visiting",
			City:        "Cairo",
			Country:     "Egypt",
		})
	}
	return &fakeCatalog{pois: pois}
}

func TestBuildItineraryFullTrip(t *testing.T) {
	svc := newTestItineraryService(cairoCatalog(30))

	itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
		City:    "Cairo",
		Country: "Egypt",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, itinerary.DaysCount)
	assert.Equal(t, "6-Day Cairo Explorer", itinerary.Name)
	assert.Contains(t, itinerary.ShortDescription, "Ultimate travel experience")
	require.Len(t, itinerary.Days, 6)

	seen := map[int64]bool{}
	for dayIndex, day := range itinerary.Days {
		assert.Equal(t, dayIndex+1, day.Day)
		require.Len(t, day.Places, 5)
		for _, place := range day.Places {
			assert.Equal(t, dayIndex+1, place.Day)
			assert.True(t, isHalfHourAligned(place.Start))
			assert.True(t, isHalfHourAligned(place.End))
			if place.ID > 0 {
				assert.False(t, seen[place.ID], "poi %d scheduled twice", place.ID)
				seen[place.ID] = true
			}
		}
	}

	// the anchor hotel opens day one and every catalog entry is used
	assert.Equal(t, "hotel", itinerary.Days[0].Places[0].Category)
	assert.Len(t, seen, 30)
}

func TestBuildItineraryDayCountThresholds(t *testing.T) {
	cases := []struct {
		pool int
		days int
	}{
		{pool: 10, days: 3},
		{pool: 15, days: 3},
		{pool: 20, days: 4},
		{pool: 25, days: 5},
		{pool: 30, days: 6},
	}

	for _, tc := range cases {
		svc := newTestItineraryService(cairoCatalog(tc.pool))
		itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
			City:    "Cairo",
			Country: "Egypt",
		})
		require.NoError(t, err)
		assert.Equal(t, tc.days, itinerary.DaysCount, "pool of %d", tc.pool)
		assert.Len(t, itinerary.Days, tc.days)
	}
}

func TestBuildItineraryFillsShortPools(t *testing.T) {
	svc := newTestItineraryService(cairoCatalog(8))

	itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
		City:    "Cairo",
		Country: "Egypt",
	})
	require.NoError(t, err)

	require.Equal(t, 3, itinerary.DaysCount)
	total := 0
	fillers := 0
	for _, day := range itinerary.Days {
		total += len(day.Places)
		for _, place := range day.Places {
			if place.ID == -2 {
				fillers++
				assert.Equal(t, "Free time / transit", place.Name)
				assert.Equal(t, "free time", place.Category)
			}
		}
	}
	assert.Equal(t, 15, total)
	assert.Greater(t, fillers, 0)
}

func TestBuildItineraryUnknownLocation(t *testing.T) {
	svc := newTestItineraryService(cairoCatalog(30))

	itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
		City:    "Atlantis",
		Country: "Nowhere",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, itinerary.DaysCount)
	assert.Equal(t, "Trip in Atlantis", itinerary.Name)
	assert.Equal(t, "No places found for Atlantis, Nowhere", itinerary.ShortDescription)
	assert.Empty(t, itinerary.Days)
}

func TestBuildItineraryCatalogFailure(t *testing.T) {
	svc := newTestItineraryService(&fakeCatalog{loadErr: utils.ErrCatalogUnavailable})

	itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
		City:    "Cairo",
		Country: "Egypt",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, itinerary.DaysCount)
	assert.Equal(t, "Failed to load data", itinerary.ShortDescription)
	assert.Empty(t, itinerary.Days)
}

func TestBuildItineraryThemeBoost(t *testing.T) {
	pois := []POIInfo{
		{PoiID: 1, Name: "Grand Hotel", Type: "hotel", City: "Cairo", Country: "Egypt"},
		{PoiID: 2, Name: "National Museum", Type: "museum", Description: "historic collection", City: "Cairo", Country: "Egypt"},
		{PoiID: 3, Name: "Corner Diner", Type: "restaurant", City: "Cairo", Country: "Egypt"},
	}
	svc := newTestItineraryService(&fakeCatalog{pois: pois})

	itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
		City:    "Cairo",
		Country: "Egypt",
		Theme:   "cultural",
	})
	require.NoError(t, err)
	require.NotEmpty(t, itinerary.Days)

	var museumScore, dinerScore float64
	for _, day := range itinerary.Days {
		for _, place := range day.Places {
			switch place.ID {
			case 2:
				museumScore = place.Score
			case 3:
				dinerScore = place.Score
			}
		}
	}
	assert.Equal(t, 1.25, museumScore)
	assert.Equal(t, 1.0, dinerScore)
}

func culturalCairoCatalog() *fakeCatalog {
	kinds := []struct{ rawType, name string }{
		{"restaurant", "Heritage Cafe %d"},
		{"museum", "Museum of History %d"},
		{"shopping mall", "Historic Bazaar %d"},
		{"nightclub", "Castle Club %d"},
		{"studio", "Temple Hall %d"},
	}
	pois := []POIInfo{
		{PoiID: 1, Name: "Nile Grand Hotel", Type: "hotel", City: "Cairo", Country: "Egypt"},
	}
	for i := 2; i <= 30; i++ {
		k := kinds[i%len(kinds)]
		pois = append(pois, POIInfo{
			PoiID:   int64(i),
			Name:    fmt.Sprintf(k.name, i),
			Type:    k.rawType,
			City:    "Cairo",
			Country: "Egypt",
		})
	}
	return &fakeCatalog{pois: pois}
}

func TestBuildItineraryCulturalThemeCoversEveryDay(t *testing.T) {
	svc := newTestItineraryService(culturalCairoCatalog())

	itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
		City:    "Cairo",
		Country: "Egypt",
		Theme:   "cultural",
	})
	require.NoError(t, err)

	require.Equal(t, 6, itinerary.DaysCount)
	require.Len(t, itinerary.Days, 6)
	assert.Equal(t, "hotel", itinerary.Days[0].Places[0].Category)

	themes := NewThemeService()
	resolver := NewKeywordThemeResolver(themes)
	for _, day := range itinerary.Days {
		require.Len(t, day.Places, 5)
		cultural := false
		for _, place := range day.Places {
			if containsString(resolver.Resolve(place.Category, place.Name, "", nil), "cultural") {
				cultural = true
				break
			}
		}
		assert.True(t, cultural, "day %d carries no cultural stop", day.Day)
	}
}

func TestBuildItineraryShuffleIsSeedDeterministic(t *testing.T) {
	build := func() response_models.Itinerary {
		cfg := DefaultAssemblerConfig()
		cfg.Rand = rand.New(rand.NewSource(42))
		themes := NewThemeService()
		svc := NewItineraryService(cairoCatalog(30), themes, NewKeywordThemeResolver(themes), cfg, zap.NewNop())

		itinerary, err := svc.BuildItinerary(context.Background(), request_models.BuildItineraryRequest{
			City:    "Cairo",
			Country: "Egypt",
		})
		require.NoError(t, err)
		return itinerary
	}

	first := build()
	second := build()
	require.Equal(t, 6, first.DaysCount)
	assert.Equal(t, first, second)
}

func TestGenerateTourNameTitleCasing(t *testing.T) {
	assert.Equal(t, "3-Day Addis Ababa Discovery", generateTourName("addis ababa", 3))
	assert.Equal(t, "3-Day N'Djamena Discovery", generateTourName("n'djamena", 3))
	assert.Equal(t, "4-Day Luxor Discovery", generateTourName("LUXOR", 4))
	assert.Equal(t, "4-Day Cairo Explorer", generateTourName("CAIRO", 4))
}

func TestBuildDayPlan(t *testing.T) {
	svc := newTestItineraryService(cairoCatalog(30))

	slots, err := svc.BuildDayPlan(context.Background(), request_models.BuildItineraryRequest{
		City:    "Cairo",
		Country: "Egypt",
	}, 6)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.Equal(t, "hotel", slots[0].Category)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "22:00", slots[len(slots)-1].End)
	for _, s := range slots {
		assert.Equal(t, 1, s.Day)
	}
}

func TestBuildDayPlanUnknownLocation(t *testing.T) {
	svc := newTestItineraryService(cairoCatalog(5))

	slots, err := svc.BuildDayPlan(context.Background(), request_models.BuildItineraryRequest{
		City:    "Atlantis",
		Country: "Nowhere",
	}, 6)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
