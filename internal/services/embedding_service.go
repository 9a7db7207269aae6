package services

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"tourplan/internal/models/db_models"
	"tourplan/internal/repositories"
	"tourplan/pkg/utils"
)

type EmbeddingServiceInterface interface {
	// Backfill embeds every POI text in the given language and upserts
	// the vector plus classified theme tags. Returns how many rows were
	// indexed; per-row failures are logged and skipped.
	Backfill(ctx context.Context, lang string) (int, error)
	// IndexPoi embeds a single POI, used on ingest.
	IndexPoi(ctx context.Context, poiID int64, lang, name, shortDescription, description string) error
}

type EmbeddingService struct {
	embedClient utils.EmbeddingClientInterface
	poiRepo     repositories.POIRepository
	embRepo     repositories.PoiEmbeddingRepository
	themes      ThemeServiceInterface
	logger      *zap.Logger
}

func NewEmbeddingService(
	embedClient utils.EmbeddingClientInterface,
	poiRepo repositories.POIRepository,
	embRepo repositories.PoiEmbeddingRepository,
	themes ThemeServiceInterface,
	logger *zap.Logger,
) EmbeddingServiceInterface {
	return &EmbeddingService{
		embedClient: embedClient,
		poiRepo:     poiRepo,
		embRepo:     embRepo,
		themes:      themes,
		logger:      logger,
	}
}

func composeDocument(name, shortDescription, description string) string {
	parts := []string{}
	for _, p := range []string{name, shortDescription, description} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

func (s *EmbeddingService) IndexPoi(ctx context.Context, poiID int64, lang, name, shortDescription, description string) error {
	doc := composeDocument(name, shortDescription, description)
	if doc == "" {
		return utils.ErrInvalidInput
	}
	if lang == "" {
		lang = "en"
	}

	vector, err := s.embedClient.GetEmbedding(ctx, doc)
	if err != nil {
		s.logger.Error("embedding failed", zap.Int64("poi_id", poiID), zap.Error(err))
		return utils.ErrEmbeddingUnavailable
	}

	themes := s.themes.ClassifyThemes(doc)
	return s.embRepo.Upsert(ctx, db_models.PoiEmbedding{
		PoiID:     poiID,
		Lang:      lang,
		Themes:    pq.StringArray(themes),
		Embedding: vector,
	})
}

func (s *EmbeddingService) Backfill(ctx context.Context, lang string) (int, error) {
	if lang == "" {
		lang = "en"
	}

	texts, err := s.poiRepo.ListTexts(ctx, lang)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, text := range texts {
		err := s.IndexPoi(ctx, text.PoiID, lang, text.Name, text.ShortDescription, text.Description)
		if err != nil {
			s.logger.Warn("skipping poi during backfill",
				zap.Int64("poi_id", text.PoiID),
				zap.Error(err))
			continue
		}
		indexed++
	}

	s.logger.Info("embedding backfill finished",
		zap.String("lang", lang),
		zap.Int("indexed", indexed),
		zap.Int("total", len(texts)))
	return indexed, nil
}
