package osmnav

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

const (
	// earthRadius in meters
	earthRadius = 6371e3
	pi180       = math.Pi / 180.0
)

// DistanceMetric defines how distance between two positions is evaluated
type DistanceMetric uint16

const (
	// METRIC_HAVERSINE great circle distance in meters. Positions are treated as degrees
	METRIC_HAVERSINE = DistanceMetric(iota + 1)
	// METRIC_PLANAR euclidean distance on raw coordinate values (Lon == X, Lat == Y)
	METRIC_PLANAR
)

func (iotaIdx DistanceMetric) String() string {
	return [...]string{"haversine", "planar"}[iotaIdx-1]
}

var metricTypes = map[string]DistanceMetric{
	"haversine": METRIC_HAVERSINE,
	"planar":    METRIC_PLANAR,
}

// ParseDistanceMetric returns metric for its textual name
func ParseDistanceMetric(str string) (DistanceMetric, error) {
	if metric, ok := metricTypes[strings.ToLower(strings.TrimSpace(str))]; ok {
		return metric, nil
	}
	return 0, errors.Errorf("unknown distance metric '%s'. Expected values: haversine / planar", str)
}

// Distance returns distance between two positions given as lat/lon pairs
func (iotaIdx DistanceMetric) Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p := orb.Point{lon1, lat1}
	q := orb.Point{lon2, lat2}
	switch iotaIdx {
	case METRIC_PLANAR:
		return planar.Distance(p, q)
	default:
		return greatCircleDistance(p, q)
	}
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// greatCircleDistance returns haversine distance between two geo-points (meters)
func greatCircleDistance(p, q orb.Point) float64 {
	lat1 := degreesToRadians(p.Lat())
	lon1 := degreesToRadians(p.Lon())
	lat2 := degreesToRadians(q.Lat())
	lon2 := degreesToRadians(q.Lon())
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadius
}

// travelTime returns minutes needed to pass given distance with given speed (km/h)
func travelTime(distance, speed float64) float64 {
	return distance / speed * TravelTimeFactor
}
