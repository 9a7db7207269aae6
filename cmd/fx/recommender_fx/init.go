package recommender_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourplan/internal/repositories"
	"tourplan/internal/services"
	"tourplan/pkg/utils"
)

var Module = fx.Provide(
	provideScoredCandidateRepo,
	provideCandidateService,
	provideScoringService)

func provideScoredCandidateRepo(db *gorm.DB) repositories.ScoredCandidateRepository {
	return repositories.NewScoredCandidateRepository(db)
}

// Generators are listed lowest merge priority first, so semantic signals win
// conflicts.
func provideCandidateService(
	embedClient utils.EmbeddingClientInterface,
	embRepo repositories.PoiEmbeddingRepository,
	poiRepo repositories.POIRepository,
	catalog services.CatalogServiceInterface,
	logger *zap.Logger,
) services.CandidateServiceInterface {
	generators := []services.CandidateGenerator{
		services.NewPopularityGenerator(catalog, logger),
		services.NewGeoGenerator(catalog, logger),
		services.NewSemanticGenerator(embedClient, embRepo, poiRepo, catalog, logger),
	}
	return services.NewCandidateService(generators, logger)
}

func provideScoringService(scoredRepo repositories.ScoredCandidateRepository, logger *zap.Logger) services.ScoringServiceInterface {
	return services.NewScoringService(scoredRepo, logger)
}
