package raster

import "math"

// Point is a geographic location, X being the longitude and Y the latitude
// in degrees.
type Point struct {
	X, Y float64
}

func LatLng(lat, lng float64) Point {
	return Point{lng, lat}
}

type IntPoint struct {
	X, Y int
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
