package domain

type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// GeocoderPort resolves a postal address to coordinates. Returns
// (nil, nil) when the address cannot be resolved.
type GeocoderPort interface {
	Geocode(address string) (*GeoPoint, error)
}
