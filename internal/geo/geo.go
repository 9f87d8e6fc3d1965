// Package geo содержит географические примитивы: точка и haversine-дистанция.
package geo

import "math"

// EarthRadiusKm - радиус сферической Земли в километрах.
const EarthRadiusKm = 6371.0

// Point - географическая точка (широта/долгота в градусах).
type Point struct {
	Lat float64
	Lng float64
}

// Valid возвращает true, если координаты лежат в допустимых диапазонах.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// HaversineKm возвращает дистанцию большого круга между двумя точками в км.
// Полная точность, без округления: округление только для отображения.
func HaversineKm(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// RoundKm округляет дистанцию до двух знаков для отображения в API.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
