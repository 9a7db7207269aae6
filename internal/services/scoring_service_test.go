package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourplan/internal/models/db_models"
)

func TestNormalizeScore(t *testing.T) {
	t.Run("degenerate range is neutral", func(t *testing.T) {
		assert.Equal(t, 0.5, NormalizeScore(3.0, 2.0, 2.0))
		assert.Equal(t, 0.5, NormalizeScore(0.0, 0.0, 0.0))
	})

	t.Run("non-finite values score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, NormalizeScore(math.NaN(), 0.0, 1.0))
		assert.Equal(t, 0.0, NormalizeScore(math.Inf(1), 0.0, 1.0))
		assert.Equal(t, 0.0, NormalizeScore(math.Inf(-1), 0.0, 1.0))
	})

	t.Run("linear mapping", func(t *testing.T) {
		assert.Equal(t, 0.0, NormalizeScore(0.0, 0.0, 10.0))
		assert.Equal(t, 0.5, NormalizeScore(5.0, 0.0, 10.0))
		assert.Equal(t, 1.0, NormalizeScore(10.0, 0.0, 10.0))
	})

	t.Run("out of range values extrapolate", func(t *testing.T) {
		assert.Equal(t, 1.5, NormalizeScore(15.0, 0.0, 10.0))
		assert.Equal(t, -0.5, NormalizeScore(-5.0, 0.0, 10.0))
	})
}

func floatPtr(v float64) *float64 { return &v }

func newTestScoringService() ScoringServiceInterface {
	return NewScoringService(nil, zap.NewNop())
}

func TestScoreEmptyInput(t *testing.T) {
	svc := newTestScoringService()
	ranked := svc.Score(nil, UserContext{}, DefaultScoringWeights())
	assert.Empty(t, ranked)
}

func TestScoreWeightedFormula(t *testing.T) {
	svc := newTestScoringService()

	candidates := []Candidate{
		{PoiID: 1, Type: "hotel", Semantic: floatPtr(0.8), DistanceKm: floatPtr(1.0)},
		{PoiID: 2, Type: "restaurant", Semantic: floatPtr(0.2), DistanceKm: floatPtr(3.0)},
	}
	userCtx := UserContext{Interests: []string{"Hotel"}}

	ranked := svc.Score(candidates, userCtx, DefaultScoringWeights())
	require.Len(t, ranked, 2)

	// poi 1: sem norm 1.0, dist norm 1-0=1.0, category match, no penalty
	top := ranked[0]
	assert.Equal(t, int64(1), top.PoiID)
	assert.Equal(t, 1.0, top.SemanticNorm)
	assert.Equal(t, 1.0, top.DistanceNorm)
	assert.Equal(t, 1.0, top.CategoryScore)
	assert.Equal(t, 0.0, top.DiversityScore)
	assert.Equal(t, 0.95, top.FinalScore) // 0.5 + 0.3 + 0.15

	// poi 2: sem norm 0.0, dist norm 0.0, no interest match
	bottom := ranked[1]
	assert.Equal(t, int64(2), bottom.PoiID)
	assert.Equal(t, 0.0, bottom.FinalScore)
}

func TestScoreMissingSignalsAreNeutral(t *testing.T) {
	svc := newTestScoringService()

	candidates := []Candidate{
		{PoiID: 1, Type: "shop", Semantic: floatPtr(0.1)},
		{PoiID: 2, Type: "museum", Semantic: floatPtr(0.9), DistanceKm: floatPtr(2.0)},
		{PoiID: 3, Type: "park"},
	}

	ranked := svc.Score(candidates, UserContext{}, DefaultScoringWeights())
	require.Len(t, ranked, 3)

	byID := map[int64]RankedCandidate{}
	for _, r := range ranked {
		byID[r.PoiID] = r
	}

	// poi 1 has no distance signal
	assert.Equal(t, 0.5, byID[1].DistanceNorm)
	// poi 3 has neither signal
	assert.Equal(t, 0.5, byID[3].SemanticNorm)
	assert.Equal(t, 0.5, byID[3].DistanceNorm)
	// only one distance value observed, degenerate range inverts to 0.5
	assert.Equal(t, 0.5, byID[2].DistanceNorm)
}

func TestScoreDiversityPenaltyIsSequential(t *testing.T) {
	svc := newTestScoringService()

	candidates := []Candidate{
		{PoiID: 1, Type: "restaurant"},
		{PoiID: 2, Type: "restaurant"},
		{PoiID: 3, Type: "restaurant"},
	}

	ranked := svc.Score(candidates, UserContext{}, DefaultScoringWeights())
	require.Len(t, ranked, 3)

	// no signals at all: sem and dist both neutral, only the penalty varies
	assert.Equal(t, 0.4, ranked[0].FinalScore)
	assert.Equal(t, int64(1), ranked[0].PoiID)
	assert.Equal(t, -0.2, ranked[1].DiversityScore)
	assert.Equal(t, 0.39, ranked[1].FinalScore)
	assert.Equal(t, -0.4, ranked[2].DiversityScore)
	assert.Equal(t, 0.38, ranked[2].FinalScore)
}

func TestScoreSortsDescendingStable(t *testing.T) {
	svc := newTestScoringService()

	candidates := []Candidate{
		{PoiID: 1, Type: "a"},
		{PoiID: 2, Type: "b"},
		{PoiID: 3, Type: "c"},
	}

	ranked := svc.Score(candidates, UserContext{}, DefaultScoringWeights())
	require.Len(t, ranked, 3)

	// all distinct types, identical neutral scores: input order preserved
	assert.Equal(t, int64(1), ranked[0].PoiID)
	assert.Equal(t, int64(2), ranked[1].PoiID)
	assert.Equal(t, int64(3), ranked[2].PoiID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].FinalScore, ranked[i].FinalScore)
	}
}

func TestScoreCustomWeights(t *testing.T) {
	svc := newTestScoringService()

	candidates := []Candidate{{PoiID: 1, Type: "hotel"}}
	weights := ScoringWeights{Semantic: 1.0, Distance: 0.0, Category: 0.0, Diversity: 0.0}

	ranked := svc.Score(candidates, UserContext{Interests: []string{"hotel"}}, weights)
	require.Len(t, ranked, 1)
	assert.Equal(t, 0.5, ranked[0].FinalScore)
}

type mockScoredRepo struct {
	mock.Mock
}

func (m *mockScoredRepo) SaveAll(ctx context.Context, rows []db_models.ScoredCandidate) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *mockScoredRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestSaveResults(t *testing.T) {
	repo := new(mockScoredRepo)
	svc := NewScoringService(repo, zap.NewNop())

	candidates := []Candidate{
		{PoiID: 1, Type: "hotel", City: "Cairo", Country: "Egypt"},
		{PoiID: 2, Type: "museum", City: "Cairo", Country: "Egypt"},
	}
	ranked := svc.Rerank(candidates, UserContext{})

	repo.On("SaveAll", mock.Anything, mock.MatchedBy(func(rows []db_models.ScoredCandidate) bool {
		return len(rows) == 2 && rows[0].City == "Cairo"
	})).Return(nil)

	err := svc.SaveResults(context.Background(), ranked)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSaveResultsEmptyIsNoop(t *testing.T) {
	repo := new(mockScoredRepo)
	svc := NewScoringService(repo, zap.NewNop())

	err := svc.SaveResults(context.Background(), nil)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "SaveAll")
}
