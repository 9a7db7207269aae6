package db_models

// POIText holds the language variants of a POI's display text.
type POIText struct {
	ID               int64 `gorm:"primaryKey;autoIncrement"`
	PoiID            int64 `gorm:"index:idx_poi_texts_poi_lang"`
	Lang             string `gorm:"index:idx_poi_texts_poi_lang;size:5"`
	Name             string
	ShortDescription string
	Description      string
}

func (POIText) TableName() string { return "poi_texts" }
