package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tourplan/internal/models/db_models"
	"tourplan/internal/models/request_models"
	"tourplan/internal/repositories"
	"tourplan/pkg/utils"
)

type PoiServiceInterface interface {
	// CreatePoi stores the POI with its texts, embeds each text and
	// refreshes the catalog index. Embedding failures do not fail the
	// ingest.
	CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) (int64, error)
}

type PoiService struct {
	poiRepo   repositories.POIRepository
	embedding EmbeddingServiceInterface
	catalog   CatalogServiceInterface
	logger    *zap.Logger
}

func NewPoiService(
	poiRepo repositories.POIRepository,
	embedding EmbeddingServiceInterface,
	catalog CatalogServiceInterface,
	logger *zap.Logger,
) PoiServiceInterface {
	return &PoiService{
		poiRepo:   poiRepo,
		embedding: embedding,
		catalog:   catalog,
		logger:    logger,
	}
}

func (s *PoiService) CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) (int64, error) {
	if strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.Country) == "" {
		return 0, utils.ErrInvalidInput
	}

	if req.Latitude != nil && req.Longitude != nil {
		if !utils.ValidateCoordinates(*req.Latitude, *req.Longitude) {
			return 0, utils.ErrInvalidInput
		}
	}

	poi := db_models.POI{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		CityName:    strings.TrimSpace(req.City),
		CountryName: strings.TrimSpace(req.Country),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	for _, t := range req.Texts {
		poi.Texts = append(poi.Texts, db_models.POIText{
			Lang:             t.Lang,
			Name:             t.Name,
			ShortDescription: t.ShortDescription,
			Description:      t.Description,
		})
	}

	poiID, err := s.poiRepo.CreatePoi(ctx, &poi)
	if err != nil {
		s.logger.Error("failed to create poi", zap.Error(err))
		return 0, utils.ErrDatabaseError
	}

	for _, t := range req.Texts {
		name := t.Name
		if name == "" {
			name = req.Name
		}
		description := t.Description
		if description == "" {
			description = req.Description
		}
		if err := s.embedding.IndexPoi(ctx, poiID, t.Lang, name, t.ShortDescription, description); err != nil {
			s.logger.Warn("poi created but embedding failed",
				zap.Int64("poi_id", poiID),
				zap.String("lang", t.Lang),
				zap.Error(err))
		}
	}

	if err := s.catalog.Reload(ctx); err != nil {
		s.logger.Warn("catalog reload after ingest failed", zap.Error(err))
	}

	return poiID, nil
}
