package db_models

import (
	"time"

	"gorm.io/datatypes"
)

// ScoredCandidate is an audit row for one reranked candidate. Written only
// when the caller asks for persistence; ranking never reads this table.
type ScoredCandidate struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	PoiID          int64 `gorm:"column:poi_id"`
	City           string
	Country        string
	Type           string
	Semantic       float64
	Distance       float64
	CategoryScore  float64
	DiversityScore float64
	FinalScore     float64
	Explanation    string
	Breakdown      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (ScoredCandidate) TableName() string { return "scored_candidates" }
