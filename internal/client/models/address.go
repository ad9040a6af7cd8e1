package models

// Geometry is a WGS84 coordinate pair.
type Geometry struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressOption is one geocoding match returned by the address search.
type AddressOption struct {
	Formatted string   `json:"formatted"`
	Geometry  Geometry `json:"geometry"`
}
