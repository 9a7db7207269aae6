package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourplan/internal/models/request_models"
	"tourplan/internal/models/response_models"
	"tourplan/internal/services"
	"tourplan/pkg/utils"
)

type RecommendationController struct {
	scoringService   services.ScoringServiceInterface
	themeService     services.ThemeServiceInterface
	candidateService services.CandidateServiceInterface
}

func NewRecommendationController(
	scoringService services.ScoringServiceInterface,
	themeService services.ThemeServiceInterface,
	candidateService services.CandidateServiceInterface,
) *RecommendationController {
	return &RecommendationController{
		scoringService:   scoringService,
		themeService:     themeService,
		candidateService: candidateService,
	}
}

// GetCandidates runs the generator pipeline and returns the merged pool.
func (rc *RecommendationController) GetCandidates(c *gin.Context) {
	req := services.CandidateRequest{
		Query:    c.Query("query"),
		City:     c.Query("city"),
		Country:  c.Query("country"),
		Language: c.DefaultQuery("language", "en"),
	}

	if latStr := c.Query("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid latitude")
			return
		}
		req.Lat = &lat
	}
	if lonStr := c.Query("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid longitude")
			return
		}
		req.Lon = &lon
	}
	if radiusStr := c.Query("radius_km"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "Invalid radius")
			return
		}
		req.RadiusKm = radius
	}

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 200 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-200)")
		return
	}
	req.Limit = limit

	candidates, err := rc.candidateService.Collect(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, candidates, "Candidates fetched successfully")
}

func (rc *RecommendationController) Rerank(c *gin.Context) {
	var req request_models.RerankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "candidates are required")
		return
	}

	candidates := make([]services.Candidate, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		candidates = append(candidates, services.Candidate{
			PoiID:      cand.PoiID,
			Name:       cand.Name,
			City:       cand.City,
			Country:    cand.Country,
			Type:       cand.Type,
			Themes:     cand.Themes,
			Semantic:   cand.Semantic,
			DistanceKm: cand.DistanceKm,
			Rank:       cand.Rank,
		})
	}

	userCtx := services.UserContext{
		City:      req.UserContext.City,
		Country:   req.UserContext.Country,
		Language:  req.UserContext.Language,
		Interests: req.UserContext.Interests,
	}

	weights := services.DefaultScoringWeights()
	if req.Weights != nil {
		if req.Weights.Semantic != nil {
			weights.Semantic = *req.Weights.Semantic
		}
		if req.Weights.Distance != nil {
			weights.Distance = *req.Weights.Distance
		}
		if req.Weights.Category != nil {
			weights.Category = *req.Weights.Category
		}
		if req.Weights.Diversity != nil {
			weights.Diversity = *req.Weights.Diversity
		}
	}

	ranked := rc.scoringService.Score(candidates, userCtx, weights)

	if req.Persist {
		if err := rc.scoringService.SaveResults(c.Request.Context(), ranked); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
	}

	out := make([]response_models.ScoredCandidateResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, response_models.ScoredCandidateResponse{
			PoiID:          r.PoiID,
			Name:           r.Name,
			City:           r.City,
			Country:        r.Country,
			Type:           r.Type,
			Semantic:       r.SemanticNorm,
			Distance:       r.DistanceNorm,
			CategoryScore:  r.CategoryScore,
			DiversityScore: r.DiversityScore,
			FinalScore:     r.FinalScore,
			Explanation:    r.Explanation,
		})
	}

	utils.RespondSuccess(c, out, "Candidates reranked successfully")
}

// ClearScores wipes the rerank audit table.
func (rc *RecommendationController) ClearScores(c *gin.Context) {
	if err := rc.scoringService.ClearResults(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Scored candidates cleared")
}

func (rc *RecommendationController) ListThemes(c *gin.Context) {
	themes := rc.themeService.ListThemes()

	out := make([]response_models.ThemeResponse, 0, len(themes))
	for _, t := range themes {
		out = append(out, response_models.ThemeResponse{
			Name:     t.Name,
			Boost:    t.Boost,
			Keywords: t.Keywords,
		})
	}

	utils.RespondSuccess(c, out, "Themes fetched successfully")
}
