// Package geo provides great-circle distance helpers for route planning.
package geo

import "math"

const earthRadiusNM = 3440.065

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceNM returns the haversine great-circle distance between two points
// in nautical miles.
func DistanceNM(a, b Point) float64 {
	latA := radians(a.Lat)
	latB := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusNM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// RouteDistanceNM returns the cumulative leg distance along an ordered list
// of waypoints. Fewer than two waypoints is a zero-length route.
func RouteDistanceNM(waypoints []Point) float64 {
	var total float64
	for i := 1; i < len(waypoints); i++ {
		total += DistanceNM(waypoints[i-1], waypoints[i])
	}
	return total
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
