package geo

import "github.com/twpayne/go-polyline"

// RouteLength sums the great-circle legs between consecutive points.
func RouteLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Between(points[i-1], points[i])
	}

	return total
}

// EncodeRoute encodes the points with the Google polyline algorithm so map clients can draw the trail.
func EncodeRoute(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}

	return string(polyline.EncodeCoords(coords))
}

// DecodeRoute is the inverse of EncodeRoute.
func DecodeRoute(encoded string) ([]Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(coords))
	for i, c := range coords {
		points[i] = Point{Latitude: c[0], Longitude: c[1]}
	}

	return points, nil
}
