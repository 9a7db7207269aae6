package repositories

import (
	"context"

	"gorm.io/gorm"

	"tourplan/internal/models/db_models"
)

type ScoredCandidateRepository interface {
	SaveAll(ctx context.Context, rows []db_models.ScoredCandidate) error
	Clear(ctx context.Context) error
}

type scoredCandidateRepository struct {
	db *gorm.DB
}

func NewScoredCandidateRepository(db *gorm.DB) ScoredCandidateRepository {
	return &scoredCandidateRepository{db: db}
}

func (r *scoredCandidateRepository) SaveAll(ctx context.Context, rows []db_models.ScoredCandidate) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *scoredCandidateRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM scored_candidates").Error
}
