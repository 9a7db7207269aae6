package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tourplan/internal/models/db_models"
)

type POIRepository interface {
	// LoadCatalog returns the full catalog with display text resolved to
	// the requested language. Rows lacking city or country are excluded.
	LoadCatalog(ctx context.Context, lang string) ([]db_models.CatalogEntry, error)
	ListByIDs(ctx context.Context, ids []int64) ([]db_models.CatalogEntry, error)
	CreatePoi(ctx context.Context, poi *db_models.POI) (int64, error)
	ListTexts(ctx context.Context, lang string) ([]db_models.POIText, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

const catalogQuery = `
	SELECT p.id AS poi_id,
	       COALESCE(NULLIF(pt.name, ''), p.name) AS name,
	       p.type AS type,
	       COALESCE(NULLIF(pt.description, ''), p.description) AS description,
	       p.city_name, p.country_name, p.latitude, p.longitude
	FROM pois p
	LEFT JOIN poi_texts pt ON p.id = pt.poi_id AND pt.lang = ?
	WHERE p.city_name IS NOT NULL AND p.city_name <> ''
	  AND p.country_name IS NOT NULL AND p.country_name <> ''
	ORDER BY p.city_name, p.country_name, p.id`

func (r *poiRepository) LoadCatalog(ctx context.Context, lang string) ([]db_models.CatalogEntry, error) {
	var entries []db_models.CatalogEntry
	err := r.db.WithContext(ctx).Raw(catalogQuery, lang).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *poiRepository) ListByIDs(ctx context.Context, ids []int64) ([]db_models.CatalogEntry, error) {
	if len(ids) == 0 {
		return []db_models.CatalogEntry{}, nil
	}

	var entries []db_models.CatalogEntry
	err := r.db.WithContext(ctx).
		Model(&db_models.POI{}).
		Select("id AS poi_id, name, type, description, city_name, country_name, latitude, longitude").
		Where("id IN ?", ids).
		Scan(&entries).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []db_models.CatalogEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func (r *poiRepository) CreatePoi(ctx context.Context, poi *db_models.POI) (int64, error) {
	if err := r.db.WithContext(ctx).Create(poi).Error; err != nil {
		return 0, err
	}
	return poi.ID, nil
}

func (r *poiRepository) ListTexts(ctx context.Context, lang string) ([]db_models.POIText, error) {
	var texts []db_models.POIText
	err := r.db.WithContext(ctx).
		Where("lang = ?", lang).
		Order("poi_id").
		Find(&texts).Error
	if err != nil {
		return nil, err
	}
	return texts, nil
}
