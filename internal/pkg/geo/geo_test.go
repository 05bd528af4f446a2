package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		want       float64
		delta      float64
	}{
		{"same point", 10, 20, 10, 20, 0, 1e-9},
		{"0.09 degree of longitude on the equator", 0, 0, 0, 0.09, 10.0, 0.01},
		{"paris to london", 48.8566, 2.3522, 51.5074, -0.1278, 343.5, 1},
		{"antipodal", 0, 0, 0, 180, 20015.1, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	b := Distance(34.0522, -118.2437, 40.7128, -74.0060)

	assert.InDelta(t, a, b, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.01, Round2(10.00754))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.Equal(t, 3.46, Round2(3.455000001))
}

func TestRouteLength(t *testing.T) {
	assert.Zero(t, RouteLength(nil))
	assert.Zero(t, RouteLength([]Point{{Latitude: 1, Longitude: 1}}))

	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 0.09},
		{Latitude: 0, Longitude: 0.18},
	}
	assert.InDelta(t, 20.0, RouteLength(points), 0.02)
}

func TestEncodeRoute(t *testing.T) {
	assert.Empty(t, EncodeRoute(nil))

	// Reference sample from the polyline algorithm documentation.
	points := []Point{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	encoded := EncodeRoute(points)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, err := DecodeRoute(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range points {
		assert.InDelta(t, points[i].Latitude, decoded[i].Latitude, 1e-5)
		assert.InDelta(t, points[i].Longitude, decoded[i].Longitude, 1e-5)
	}
}
