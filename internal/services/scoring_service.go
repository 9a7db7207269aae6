package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tourplan/internal/models/db_models"
	"tourplan/internal/repositories"
)

type ScoringWeights struct {
	Semantic  float64 `json:"semantic"`
	Distance  float64 `json:"distance"`
	Category  float64 `json:"category"`
	Diversity float64 `json:"diversity"`
}

func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{Semantic: 0.5, Distance: 0.3, Category: 0.15, Diversity: 0.05}
}

type UserContext struct {
	City      string
	Country   string
	Language  string
	Interests []string
}

type RankedCandidate struct {
	Candidate
	SemanticNorm   float64
	DistanceNorm   float64
	CategoryScore  float64
	DiversityScore float64
	FinalScore     float64
	Explanation    string
}

// NormalizeScore maps value into [0,1] against the observed range. A
// degenerate range is neutral; a non-finite value scores zero. Values outside
// the range extrapolate rather than clamp.
func NormalizeScore(value, minVal, maxVal float64) float64 {
	if maxVal == minVal {
		return 0.5
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0.0
	}
	return (value - minVal) / (maxVal - minVal)
}

func categoryMatch(poiType string, interests []string) float64 {
	if poiType == "" || len(interests) == 0 {
		return 0.0
	}
	for _, interest := range interests {
		if strings.EqualFold(poiType, interest) {
			return 1.0
		}
	}
	return 0.0
}

// diversityPenalty is deliberately order-dependent: each candidate is
// penalized by how many same-type candidates were scored before it, so
// earlier positions are worth keeping.
func diversityPenalty(scoredTypes []string, currentType string) float64 {
	if currentType == "" {
		return 0.0
	}
	count := 0
	for _, t := range scoredTypes {
		if strings.EqualFold(t, currentType) {
			count++
		}
	}
	return -0.2 * float64(count)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

type ScoringServiceInterface interface {
	Score(candidates []Candidate, userCtx UserContext, weights ScoringWeights) []RankedCandidate
	Rerank(candidates []Candidate, userCtx UserContext) []RankedCandidate
	SaveResults(ctx context.Context, ranked []RankedCandidate) error
	ClearResults(ctx context.Context) error
}

type ScoringService struct {
	scoredRepo repositories.ScoredCandidateRepository
	logger     *zap.Logger
}

func NewScoringService(scoredRepo repositories.ScoredCandidateRepository, logger *zap.Logger) ScoringServiceInterface {
	return &ScoringService{scoredRepo: scoredRepo, logger: logger}
}

func (s *ScoringService) Rerank(candidates []Candidate, userCtx UserContext) []RankedCandidate {
	return s.Score(candidates, userCtx, DefaultScoringWeights())
}

func (s *ScoringService) Score(candidates []Candidate, userCtx UserContext, weights ScoringWeights) []RankedCandidate {
	if len(candidates) == 0 {
		return []RankedCandidate{}
	}

	var semVals, distVals []float64
	for _, c := range candidates {
		if c.Semantic != nil {
			semVals = append(semVals, *c.Semantic)
		}
		if c.DistanceKm != nil {
			distVals = append(distVals, *c.DistanceKm)
		}
	}

	semMin, semMax := rangeOf(semVals)
	distMin, distMax := rangeOf(distVals)

	ranked := make([]RankedCandidate, 0, len(candidates))
	scoredTypes := make([]string, 0, len(candidates))

	for _, c := range candidates {
		semanticNorm := 0.5
		if c.Semantic != nil && len(semVals) > 0 {
			semanticNorm = NormalizeScore(*c.Semantic, semMin, semMax)
		}

		// nearer is better, so invert the normalized distance
		distanceNorm := 0.5
		if c.DistanceKm != nil && len(distVals) > 0 {
			distanceNorm = 1 - NormalizeScore(*c.DistanceKm, distMin, distMax)
		}

		categoryScore := categoryMatch(c.Type, userCtx.Interests)
		diversityScore := diversityPenalty(scoredTypes, c.Type)

		finalScore := weights.Semantic*semanticNorm +
			weights.Distance*distanceNorm +
			weights.Category*categoryScore +
			weights.Diversity*diversityScore

		ranked = append(ranked, RankedCandidate{
			Candidate:      c,
			SemanticNorm:   round3(semanticNorm),
			DistanceNorm:   round3(distanceNorm),
			CategoryScore:  round3(categoryScore),
			DiversityScore: round3(diversityScore),
			FinalScore:     round3(finalScore),
			Explanation: fmt.Sprintf("sem:%.2f, dist:%.2f, cat:%.2f, div:%.2f",
				semanticNorm, distanceNorm, categoryScore, diversityScore),
		})
		scoredTypes = append(scoredTypes, c.Type)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

func rangeOf(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0.0, 1.0
	}
	minV, maxV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

func (s *ScoringService) SaveResults(ctx context.Context, ranked []RankedCandidate) error {
	if len(ranked) == 0 {
		s.logger.Warn("no scored candidates to save")
		return nil
	}

	rows := make([]db_models.ScoredCandidate, 0, len(ranked))
	for _, r := range ranked {
		breakdown, err := json.Marshal(map[string]float64{
			"semantic":  r.SemanticNorm,
			"distance":  r.DistanceNorm,
			"category":  r.CategoryScore,
			"diversity": r.DiversityScore,
		})
		if err != nil {
			return err
		}
		rows = append(rows, db_models.ScoredCandidate{
			PoiID:          r.PoiID,
			City:           r.City,
			Country:        r.Country,
			Type:           r.Type,
			Semantic:       r.SemanticNorm,
			Distance:       r.DistanceNorm,
			CategoryScore:  r.CategoryScore,
			DiversityScore: r.DiversityScore,
			FinalScore:     r.FinalScore,
			Explanation:    r.Explanation,
			Breakdown:      datatypes.JSON(breakdown),
		})
	}

	if err := s.scoredRepo.SaveAll(ctx, rows); err != nil {
		s.logger.Error("failed to save scored candidates", zap.Error(err))
		return err
	}
	s.logger.Info("saved scored candidates", zap.Int("count", len(rows)))
	return nil
}

func (s *ScoringService) ClearResults(ctx context.Context) error {
	if err := s.scoredRepo.Clear(ctx); err != nil {
		s.logger.Error("failed to clear scored candidates", zap.Error(err))
		return err
	}
	s.logger.Info("cleared scored candidates")
	return nil
}
