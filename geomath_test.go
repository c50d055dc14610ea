package osmnav

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestGreatCircleDistance(t *testing.T) {
	p1 := orb.Point{37.6417350769043, 55.751849391735284}
	p2 := orb.Point{37.668514251708984, 55.73261980350401}
	res := 2716.927 // meters
	gcd := greatCircleDistance(p1, p2)
	if Round(gcd, 0.005) != Round(res, 0.005) {
		t.Errorf("Great circle dist must be %f, but got %f", res, gcd)
	}
}

func TestGreatCircleDistanceOneDegree(t *testing.T) {
	gcd := greatCircleDistance(orb.Point{0, 0}, orb.Point{0, 1})
	res := earthRadius * math.Pi / 180.0
	if math.Abs(gcd-res) > 1e-6 {
		t.Errorf("One degree of latitude must be %f meters, but got %f", res, gcd)
	}
}

func TestMetricDistance(t *testing.T) {
	planarDist := METRIC_PLANAR.Distance(0, 0, 3, 4)
	if planarDist != 5 {
		t.Errorf("Planar distance must be 5, but got %f", planarDist)
	}
	haversineDist := METRIC_HAVERSINE.Distance(0, 0, 3, 4)
	if haversineDist < 500e3 || haversineDist > 600e3 {
		t.Errorf("Haversine distance must be about 555 km, but got %f", haversineDist)
	}
}

func TestParseDistanceMetric(t *testing.T) {
	cases := map[string]DistanceMetric{
		"haversine": METRIC_HAVERSINE,
		"Planar":    METRIC_PLANAR,
		" planar ":  METRIC_PLANAR,
	}
	for str, expected := range cases {
		metric, err := ParseDistanceMetric(str)
		if err != nil {
			t.Errorf("Unexpected error for '%s': %s", str, err)
			continue
		}
		if metric != expected {
			t.Errorf("Metric for '%s' must be %s, but got %s", str, expected, metric)
		}
	}
	if _, err := ParseDistanceMetric("manhattan"); err == nil {
		t.Errorf("Unknown metric must produce error")
	}
}

func TestTravelTime(t *testing.T) {
	// 1 km with 60 km/h takes 1 minute
	minutes := travelTime(1000, 60)
	if math.Abs(minutes-1.0) > 1e-9 {
		t.Errorf("Travel time must be 1 minute, but got %f", minutes)
	}
}

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}
