package embedding_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourplan/internal/repositories"
	"tourplan/internal/services"
	"tourplan/pkg/utils"
)

var Module = fx.Provide(
	provideEmbeddingClient,
	providePoiEmbeddingRepo,
	provideEmbeddingService)

func provideEmbeddingClient() (utils.EmbeddingClientInterface, error) {
	provider := os.Getenv("EMBEDDING_PROVIDER")
	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == "gemini" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	return utils.NewEmbeddingClient(provider, apiKey, os.Getenv("EMBEDDING_MODEL"))
}

func providePoiEmbeddingRepo(db *gorm.DB) repositories.PoiEmbeddingRepository {
	return repositories.NewPoiEmbeddingRepository(db)
}

func provideEmbeddingService(
	embedClient utils.EmbeddingClientInterface,
	poiRepo repositories.POIRepository,
	embRepo repositories.PoiEmbeddingRepository,
	themes services.ThemeServiceInterface,
	logger *zap.Logger,
) services.EmbeddingServiceInterface {
	return services.NewEmbeddingService(embedClient, poiRepo, embRepo, themes, logger)
}
