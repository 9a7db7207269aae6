package catalog_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tourplan/internal/repositories"
	"tourplan/internal/services"
)

var Module = fx.Provide(
	providePoiRepo,
	provideCatalogService,
	provideThemeService,
	provideThemeResolver)

func providePoiRepo(db *gorm.DB) repositories.POIRepository {
	return repositories.NewPOIRepository(db)
}

func provideCatalogService(poiRepo repositories.POIRepository, logger *zap.Logger) services.CatalogServiceInterface {
	return services.NewCatalogService(poiRepo, logger)
}

func provideThemeService() services.ThemeServiceInterface {
	return services.NewThemeService()
}

func provideThemeResolver(themes services.ThemeServiceInterface) services.ThemeResolver {
	return services.NewKeywordThemeResolver(themes)
}
