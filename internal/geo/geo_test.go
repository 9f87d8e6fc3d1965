package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKmZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 19.0760, Lng: 72.8777}
	assert.Zero(t, HaversineKm(p, p))
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := Point{Lat: 19.0760, Lng: 72.8777}
	b := Point{Lat: 28.6139, Lng: 77.2090}
	assert.Equal(t, HaversineKm(a, b), HaversineKm(b, a))
}

func TestHaversineKmQuarterEquator(t *testing.T) {
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 0, Lng: 90}

	got := HaversineKm(a, b)

	// Четверть окружности сферы радиусом 6371 км.
	want := 10007.5
	assert.InEpsilon(t, want, got, 0.01)
}

func TestHaversineKmKnownDistance(t *testing.T) {
	mumbai := Point{Lat: 19.0760, Lng: 72.8777}
	delhi := Point{Lat: 28.6139, Lng: 77.2090}

	got := HaversineKm(mumbai, delhi)

	assert.InDelta(t, 1153, got, 15)
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"origin", Point{0, 0}, true},
		{"boundary lat", Point{90, 0}, true},
		{"boundary lng", Point{0, -180}, true},
		{"lat too high", Point{90.0001, 0}, false},
		{"lat too low", Point{-91, 0}, false},
		{"lng too high", Point{0, 180.5}, false},
		{"lng too low", Point{0, -181}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.Valid())
		})
	}
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 12.35, RoundKm(12.3456))
	assert.Equal(t, 12.34, RoundKm(12.344))
	assert.Equal(t, 0.0, RoundKm(0))
}
