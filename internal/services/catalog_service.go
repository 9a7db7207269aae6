package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tourplan/internal/repositories"
	"tourplan/pkg/utils"
)

// POIInfo is one catalog entry held in the in-memory index.
type POIInfo struct {
	PoiID       int64
	Name        string
	Type        string
	Description string
	City        string
	Country     string
	Latitude    *float64
	Longitude   *float64

	cityLower    string
	countryLower string
}

type LocationCount struct {
	City    string
	Country string
	Count   int
}

type locKey struct {
	city    string
	country string
}

type CatalogServiceInterface interface {
	// EnsureLoaded builds the index on first call. Idempotent and
	// retryable: a failed load leaves the service unloaded.
	EnsureLoaded(ctx context.Context) error
	Reload(ctx context.Context) error
	POIsForLocation(ctx context.Context, city, country string) ([]POIInfo, error)
	AvailableLocations(ctx context.Context) ([]LocationCount, error)
	LocationSuggestions(ctx context.Context, partialCity, partialCountry string) ([]LocationCount, error)
	AllPOIs(ctx context.Context) ([]POIInfo, error)
}

// catalogIndex is one immutable build of the lookup structures. Readers work
// off a snapshot pointer, so Reload can publish a fresh index while requests
// are still reading the old one.
type catalogIndex struct {
	allPOIs            []POIInfo
	cityCountryLookup  map[locKey][]POIInfo
	cityLookup         map[string][]POIInfo
	countryLookup      map[string][]POIInfo
	availableLocations []LocationCount
}

type CatalogService struct {
	poiRepo repositories.POIRepository
	logger  *zap.Logger
	lang    string

	mu    sync.RWMutex
	index *catalogIndex
}

func NewCatalogService(poiRepo repositories.POIRepository, logger *zap.Logger) CatalogServiceInterface {
	return &CatalogService{
		poiRepo: poiRepo,
		logger:  logger,
		lang:    "en",
	}
}

func (s *CatalogService) EnsureLoaded(ctx context.Context) error {
	_, err := s.snapshot(ctx)
	return err
}

func (s *CatalogService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// snapshot returns the current index, building it on first use. A failed
// first load leaves the service unloaded so the next call retries; a failed
// reload keeps serving the previous index.
func (s *CatalogService) snapshot(ctx context.Context) (*catalogIndex, error) {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		if err := s.loadLocked(ctx); err != nil {
			return nil, err
		}
	}
	return s.index, nil
}

func (s *CatalogService) loadLocked(ctx context.Context) error {
	entries, err := s.poiRepo.LoadCatalog(ctx, s.lang)
	if err != nil {
		s.logger.Error("failed to load poi catalog", zap.Error(err))
		return utils.ErrCatalogUnavailable
	}

	allPOIs := make([]POIInfo, 0, len(entries))
	cityCountry := make(map[locKey][]POIInfo)
	byCity := make(map[string][]POIInfo)
	byCountry := make(map[string][]POIInfo)
	counts := make(map[locKey]int)

	for _, e := range entries {
		city := strings.TrimSpace(e.CityName)
		country := strings.TrimSpace(e.CountryName)
		if city == "" || country == "" {
			continue
		}

		name := e.Name
		if name == "" {
			name = "Unknown"
		}
		poiType := e.Type
		if poiType == "" {
			poiType = "other"
		}

		info := POIInfo{
			PoiID:        e.PoiID,
			Name:         name,
			Type:         poiType,
			Description:  e.Description,
			City:         city,
			Country:      country,
			Latitude:     e.Latitude,
			Longitude:    e.Longitude,
			cityLower:    strings.ToLower(city),
			countryLower: strings.ToLower(country),
		}

		allPOIs = append(allPOIs, info)
		key := locKey{city: info.cityLower, country: info.countryLower}
		cityCountry[key] = append(cityCountry[key], info)
		byCity[info.cityLower] = append(byCity[info.cityLower], info)
		byCountry[info.countryLower] = append(byCountry[info.countryLower], info)
		counts[locKey{city: city, country: country}]++
	}

	locations := make([]LocationCount, 0, len(counts))
	for key, count := range counts {
		locations = append(locations, LocationCount{City: key.city, Country: key.country, Count: count})
	}
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Count > locations[j].Count
	})

	s.index = &catalogIndex{
		allPOIs:            allPOIs,
		cityCountryLookup:  cityCountry,
		cityLookup:         byCity,
		countryLookup:      byCountry,
		availableLocations: locations,
	}

	s.logger.Info("poi catalog loaded",
		zap.Int("pois", len(allPOIs)),
		zap.Int("locations", len(locations)))

	return nil
}

// POIsForLocation resolves a city/country pair against the index, relaxing
// from exact match to city-only, country-only, then substring fuzzy match.
func (s *CatalogService) POIsForLocation(ctx context.Context, city, country string) ([]POIInfo, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	cityClean := strings.ToLower(strings.TrimSpace(city))
	countryClean := strings.ToLower(strings.TrimSpace(country))

	if pois, ok := idx.cityCountryLookup[locKey{city: cityClean, country: countryClean}]; ok {
		s.logger.Info("exact location match", zap.String("city", city), zap.String("country", country), zap.Int("pois", len(pois)))
		return pois, nil
	}

	if pois, ok := idx.cityLookup[cityClean]; ok {
		s.logger.Info("city-only location match", zap.String("city", city), zap.Int("pois", len(pois)))
		return pois, nil
	}

	if pois, ok := idx.countryLookup[countryClean]; ok {
		s.logger.Info("country-only location match", zap.String("country", country), zap.Int("pois", len(pois)))
		return pois, nil
	}

	fuzzy := []POIInfo{}
	for _, poi := range idx.allPOIs {
		cityMatch := cityClean != "" &&
			(strings.Contains(poi.cityLower, cityClean) || strings.Contains(cityClean, poi.cityLower))
		countryMatch := countryClean != "" &&
			(strings.Contains(poi.countryLower, countryClean) || strings.Contains(countryClean, poi.countryLower))
		if cityMatch || countryMatch {
			fuzzy = append(fuzzy, poi)
		}
	}

	if len(fuzzy) > 0 {
		s.logger.Info("fuzzy location match", zap.String("city", city), zap.String("country", country), zap.Int("pois", len(fuzzy)))
		return fuzzy, nil
	}

	s.logger.Warn("no pois for location", zap.String("city", city), zap.String("country", country))
	return []POIInfo{}, nil
}

func (s *CatalogService) AvailableLocations(ctx context.Context) ([]LocationCount, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LocationCount, len(idx.availableLocations))
	copy(out, idx.availableLocations)
	return out, nil
}

func (s *CatalogService) LocationSuggestions(ctx context.Context, partialCity, partialCountry string) ([]LocationCount, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	cityLower := strings.ToLower(partialCity)
	countryLower := strings.ToLower(partialCountry)

	suggestions := []LocationCount{}
	for _, loc := range idx.availableLocations {
		cityMatch := cityLower != "" && strings.Contains(strings.ToLower(loc.City), cityLower)
		countryMatch := countryLower != "" && strings.Contains(strings.ToLower(loc.Country), countryLower)
		noFilter := cityLower == "" && countryLower == ""
		if noFilter || cityMatch || countryMatch {
			suggestions = append(suggestions, loc)
		}
		if len(suggestions) >= 20 {
			break
		}
	}
	return suggestions, nil
}

func (s *CatalogService) AllPOIs(ctx context.Context) ([]POIInfo, error) {
	idx, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return idx.allPOIs, nil
}
