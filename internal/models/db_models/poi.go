package db_models

// POI is a source catalog record. The core never mutates rows of this
// table; everything downstream is derived per request.
type POI struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	Name        string
	Type        string
	Description string
	CityName    string
	CountryName string
	Latitude    *float64
	Longitude   *float64
	CreatedAt   int64 `gorm:"autoCreateTime"`
	UpdatedAt   int64 `gorm:"autoUpdateTime"`

	Texts []POIText `gorm:"foreignKey:PoiID"`
}

func (POI) TableName() string { return "pois" }
