package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	earthRadiusMeter = earthRadiusKM * 1000
)

func toS2Point(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// S2Distance returns the great circle distance between a and b in meter.
func S2Distance(a, b Coordinate) float64 {
	angle := toS2Point(a).Distance(toS2Point(b))
	return angleToMeter(angle)
}

// PolylineLength returns the length of the polyline through coords in meter.
func PolylineLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	points := make([]s2.Point, len(coords))
	for i, c := range coords {
		points[i] = toS2Point(c)
	}
	pl := s2.Polyline(points)
	return angleToMeter(pl.Length())
}

func angleToMeter(angle s1.Angle) float64 {
	return angle.Radians() * earthRadiusMeter
}
