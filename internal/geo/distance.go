package geo

import "math"

const (
	earthRadiusKm    = 6371
	earthRadiusMiles = 3959
)

// DistanceKm returns the great-circle (Haversine) distance between two
// coordinate pairs in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return haversine(lat1, lon1, lat2, lon2, earthRadiusKm)
}

// DistanceMiles returns the great-circle (Haversine) distance between
// two coordinate pairs in miles. Geofencing radii are specified in
// miles, consumer search radii in kilometers, so both units live here.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	return haversine(lat1, lon1, lat2, lon2, earthRadiusMiles)
}

func haversine(lat1, lon1, lat2, lon2, radius float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
