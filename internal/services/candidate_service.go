package services

import (
	"context"
	"sort"
	"strings"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"tourplan/internal/models/db_models"
	"tourplan/internal/repositories"
	"tourplan/pkg/utils"
)

// Candidate is the shared shape every generator produces. Optional signals
// stay nil when the generator that fills them did not see the POI.
type Candidate struct {
	PoiID       int64    `json:"poi_id"`
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	City        string   `json:"city,omitempty"`
	Country     string   `json:"country,omitempty"`
	Themes      []string `json:"themes,omitempty"`
	Score       float64  `json:"score,omitempty"`
	Semantic    *float64 `json:"semantic,omitempty"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	Rank        *int     `json:"rank,omitempty"`
}

type CandidateRequest struct {
	Query    string
	City     string
	Country  string
	Lat      *float64
	Lon      *float64
	RadiusKm float64
	Limit    int
	Language string
}

type CandidateGenerator interface {
	Name() string
	Generate(ctx context.Context, req CandidateRequest) ([]Candidate, error)
}

// ---------- semantic ----------

type SemanticGenerator struct {
	embedClient utils.EmbeddingClientInterface
	embRepo     repositories.PoiEmbeddingRepository
	poiRepo     repositories.POIRepository
	catalog     CatalogServiceInterface
	logger      *zap.Logger
}

func NewSemanticGenerator(
	embedClient utils.EmbeddingClientInterface,
	embRepo repositories.PoiEmbeddingRepository,
	poiRepo repositories.POIRepository,
	catalog CatalogServiceInterface,
	logger *zap.Logger,
) CandidateGenerator {
	return &SemanticGenerator{embedClient: embedClient, embRepo: embRepo, poiRepo: poiRepo, catalog: catalog, logger: logger}
}

func (g *SemanticGenerator) nearestFromIndex(ctx context.Context, queryVec pgvector.Vector, lang string, limit int) ([]Candidate, error) {
	rows, err := g.embRepo.NearestByVector(ctx, queryVec, lang, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PoiID)
	}
	entries, err := g.poiRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	meta := make(map[int64]db_models.CatalogEntry, len(entries))
	for _, e := range entries {
		meta[e.PoiID] = e
	}

	queryValues := queryVec.Slice()
	results := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		sim := utils.CosineSimilarity(queryValues, row.Embedding.Slice())
		c := Candidate{PoiID: row.PoiID, Semantic: &sim, Themes: []string(row.Themes)}
		if e, ok := meta[row.PoiID]; ok {
			c.Name = e.Name
			c.Type = e.Type
			c.Description = e.Description
			c.City = e.CityName
			c.Country = e.CountryName
		}
		results = append(results, c)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Semantic > *results[j].Semantic
	})
	return results, nil
}

func (g *SemanticGenerator) Name() string { return "semantic" }

func (g *SemanticGenerator) Generate(ctx context.Context, req CandidateRequest) ([]Candidate, error) {
	if req.Query == "" {
		return []Candidate{}, nil
	}
	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	queryVec, err := g.embedClient.GetEmbedding(ctx, req.Query)
	if err != nil {
		g.logger.Warn("query embedding failed", zap.Error(err))
		return nil, utils.ErrEmbeddingUnavailable
	}

	// Without location filters the top-K can come straight from the
	// database index. Filters need the full scan since the cut happens
	// after filtering.
	if req.City == "" && req.Country == "" && req.Limit > 0 {
		return g.nearestFromIndex(ctx, queryVec, lang, req.Limit)
	}

	rows, err := g.embRepo.ListByLang(ctx, lang)
	if err != nil {
		return nil, err
	}

	pois, err := g.catalog.AllPOIs(ctx)
	if err != nil {
		return nil, err
	}
	meta := make(map[int64]POIInfo, len(pois))
	for _, p := range pois {
		meta[p.PoiID] = p
	}

	results := []Candidate{}
	queryValues := queryVec.Slice()
	for _, row := range rows {
		sim := utils.CosineSimilarity(queryValues, row.Embedding.Slice())
		c := Candidate{PoiID: row.PoiID, Semantic: &sim, Themes: []string(row.Themes)}
		if p, ok := meta[row.PoiID]; ok {
			c.Name = p.Name
			c.Type = p.Type
			c.Description = p.Description
			c.City = p.City
			c.Country = p.Country
		}
		results = append(results, c)
	}

	if req.Country != "" {
		filtered := results[:0]
		for _, c := range results {
			if strings.EqualFold(c.Country, req.Country) {
				filtered = append(filtered, c)
			}
		}
		results = filtered
	}
	if req.City != "" {
		filtered := results[:0]
		for _, c := range results {
			if strings.EqualFold(c.City, req.City) {
				filtered = append(filtered, c)
			}
		}
		results = filtered
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Semantic > *results[j].Semantic
	})
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return results, nil
}

// ---------- geo ----------

type GeoGenerator struct {
	catalog CatalogServiceInterface
	logger  *zap.Logger
}

func NewGeoGenerator(catalog CatalogServiceInterface, logger *zap.Logger) CandidateGenerator {
	return &GeoGenerator{catalog: catalog, logger: logger}
}

func (g *GeoGenerator) Name() string { return "geo" }

func (g *GeoGenerator) Generate(ctx context.Context, req CandidateRequest) ([]Candidate, error) {
	if req.Lat == nil || req.Lon == nil {
		return []Candidate{}, nil
	}
	radius := req.RadiusKm
	if radius <= 0 {
		radius = 5.0
	}

	pois, err := g.catalog.AllPOIs(ctx)
	if err != nil {
		return nil, err
	}

	results := []Candidate{}
	for _, p := range pois {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		dist := utils.HaversineDistance(*req.Lat, *req.Lon, *p.Latitude, *p.Longitude)
		if dist > radius {
			continue
		}
		d := dist
		results = append(results, Candidate{
			PoiID:       p.PoiID,
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			City:        p.City,
			Country:     p.Country,
			DistanceKm:  &d,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].DistanceKm < *results[j].DistanceKm
	})
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return results, nil
}

// ---------- popularity ----------

type PopularityGenerator struct {
	catalog CatalogServiceInterface
	logger  *zap.Logger
}

func NewPopularityGenerator(catalog CatalogServiceInterface, logger *zap.Logger) CandidateGenerator {
	return &PopularityGenerator{catalog: catalog, logger: logger}
}

func (g *PopularityGenerator) Name() string { return "popularity" }

// Generate returns the first K POIs by ascending id. Placeholder signal until
// real popularity data exists.
func (g *PopularityGenerator) Generate(ctx context.Context, req CandidateRequest) ([]Candidate, error) {
	pois, err := g.catalog.AllPOIs(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]POIInfo, len(pois))
	copy(sorted, pois)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PoiID < sorted[j].PoiID
	})

	limit := req.Limit
	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}

	results := make([]Candidate, 0, limit)
	for i := 0; i < limit; i++ {
		p := sorted[i]
		rank := i + 1
		results = append(results, Candidate{
			PoiID:       p.PoiID,
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			City:        p.City,
			Country:     p.Country,
			Rank:        &rank,
		})
	}
	return results, nil
}

// ---------- merge + orchestration ----------

// MergeCandidates unions candidate lists by poi id. Lists are applied in
// order, so later sources overwrite conflicting fields; first appearance
// decides output position.
func MergeCandidates(lists ...[]Candidate) []Candidate {
	merged := map[int64]*Candidate{}
	order := []int64{}

	for _, list := range lists {
		for _, c := range list {
			existing, ok := merged[c.PoiID]
			if !ok {
				copied := c
				merged[c.PoiID] = &copied
				order = append(order, c.PoiID)
				continue
			}
			if c.Name != "" {
				existing.Name = c.Name
			}
			if c.Type != "" {
				existing.Type = c.Type
			}
			if c.Description != "" {
				existing.Description = c.Description
			}
			if c.City != "" {
				existing.City = c.City
			}
			if c.Country != "" {
				existing.Country = c.Country
			}
			if len(c.Themes) > 0 {
				existing.Themes = c.Themes
			}
			if c.Score != 0 {
				existing.Score = c.Score
			}
			if c.Semantic != nil {
				existing.Semantic = c.Semantic
			}
			if c.DistanceKm != nil {
				existing.DistanceKm = c.DistanceKm
			}
			if c.Rank != nil {
				existing.Rank = c.Rank
			}
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, id := range order {
		out = append(out, *merged[id])
	}
	return out
}

type CandidateServiceInterface interface {
	// Collect runs every generator and merges their output. A failing
	// generator contributes nothing; the rest still count.
	Collect(ctx context.Context, req CandidateRequest) ([]Candidate, error)
}

type CandidateService struct {
	generators []CandidateGenerator
	logger     *zap.Logger
}

// NewCandidateService takes generators in merge-priority order, lowest first.
func NewCandidateService(generators []CandidateGenerator, logger *zap.Logger) CandidateServiceInterface {
	return &CandidateService{generators: generators, logger: logger}
}

func (s *CandidateService) Collect(ctx context.Context, req CandidateRequest) ([]Candidate, error) {
	lists := make([][]Candidate, 0, len(s.generators))
	for _, gen := range s.generators {
		candidates, err := gen.Generate(ctx, req)
		if err != nil {
			s.logger.Warn("candidate generator failed",
				zap.String("generator", gen.Name()),
				zap.Error(err))
			continue
		}
		lists = append(lists, candidates)
	}
	return MergeCandidates(lists...), nil
}
