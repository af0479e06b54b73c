package utils

import (
	"fmt"

	"github.com/golang/geo/s2"
)

const earthRadiusKm = 6371.0088

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * earthRadiusKm
}

// Centroid averages points on the sphere. ok is false for an empty input.
func Centroid(points [][2]float64) (lat, lng float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	var sum s2.Point
	for _, p := range points {
		sum = s2.Point{Vector: sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(p[0], p[1])).Vector)}
	}
	if sum.Norm() == 0 {
		return 0, 0, false
	}
	ll := s2.LatLngFromPoint(sum)
	return ll.Lat.Degrees(), ll.Lng.Degrees(), true
}

// DistanceLabel renders a distance the way company listings show it.
func DistanceLabel(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m from center", km*1000)
	}
	return fmt.Sprintf("%.1f km from center", km)
}
