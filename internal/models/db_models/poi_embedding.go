package db_models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PoiEmbedding is a precomputed text embedding for one POI in one language.
// Theme tags are stored alongside so candidate generation can resolve
// themes without re-running the keyword classifier.
type PoiEmbedding struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	PoiID     int64  `gorm:"index:idx_poi_embeddings_poi_lang;column:poi_id"`
	Lang      string `gorm:"index:idx_poi_embeddings_poi_lang;size:5"`
	Themes    pq.StringArray  `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (PoiEmbedding) TableName() string { return "poi_embeddings" }
