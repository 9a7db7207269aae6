package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tourplan/internal/repositories"
	"tourplan/internal/services"
)

var Module = fx.Provide(
	provideAssemblerConfig,
	provideItineraryService,
	providePoiService)

func provideAssemblerConfig() services.AssemblerConfig {
	return services.DefaultAssemblerConfig()
}

func provideItineraryService(
	catalog services.CatalogServiceInterface,
	themes services.ThemeServiceInterface,
	resolver services.ThemeResolver,
	config services.AssemblerConfig,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(catalog, themes, resolver, config, logger)
}

func providePoiService(
	poiRepo repositories.POIRepository,
	embedding services.EmbeddingServiceInterface,
	catalog services.CatalogServiceInterface,
	logger *zap.Logger,
) services.PoiServiceInterface {
	return services.NewPoiService(poiRepo, embedding, catalog, logger)
}
