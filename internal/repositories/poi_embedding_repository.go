package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourplan/internal/models/db_models"
)

type PoiEmbeddingRepository interface {
	// ListByLang returns every precomputed embedding for one language.
	ListByLang(ctx context.Context, lang string) ([]db_models.PoiEmbedding, error)
	Upsert(ctx context.Context, emb db_models.PoiEmbedding) error
	// NearestByVector runs the similarity search in the database using the
	// pgvector cosine-distance operator.
	NearestByVector(ctx context.Context, vector pgvector.Vector, lang string, limit int) ([]db_models.PoiEmbedding, error)
}

type poiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) PoiEmbeddingRepository {
	return &poiEmbeddingRepository{db: db}
}

func (r *poiEmbeddingRepository) ListByLang(ctx context.Context, lang string) ([]db_models.PoiEmbedding, error) {
	var rows []db_models.PoiEmbedding
	err := r.db.WithContext(ctx).
		Where("lang = ?", lang).
		Order("poi_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *poiEmbeddingRepository) Upsert(ctx context.Context, emb db_models.PoiEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poi_id"}, {Name: "lang"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding", "themes"}),
		}).
		Create(&emb).Error
}

func (r *poiEmbeddingRepository) NearestByVector(ctx context.Context, vector pgvector.Vector, lang string, limit int) ([]db_models.PoiEmbedding, error) {
	if limit <= 0 {
		limit = 15
	}

	var results []db_models.PoiEmbedding
	query := `
        SELECT * FROM poi_embeddings
        WHERE lang = ?
        ORDER BY embedding <=> ?
        LIMIT ?`

	err := r.db.WithContext(ctx).Raw(query, lang, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
