package db_models

// CatalogEntry is the flat language-resolved row the catalog loader scans
// from the pois/poi_texts join. Not a table.
type CatalogEntry struct {
	PoiID       int64
	Name        string
	Type        string
	Description string
	CityName    string
	CountryName string
	Latitude    *float64
	Longitude   *float64
}
