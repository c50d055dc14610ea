package osmnav

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Bounds is bounding box of graph in degrees
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Valid checks that minimums do not exceed maximums
func (b Bounds) Valid() bool {
	return b.MinLon <= b.MaxLon && b.MinLat <= b.MaxLat
}

// Bound returns bounds as orb.Bound
func (b Bounds) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}

// String returns bounds in Graphviz 'bb' notation: minlon,minlat,maxlon,maxlat
func (b Bounds) String() string {
	return fmt.Sprintf("%s,%s,%s,%s", formatFloat(b.MinLon), formatFloat(b.MinLat), formatFloat(b.MaxLon), formatFloat(b.MaxLat))
}

// scale is the Graphviz 'inputscale' of the map: one tenth of the shorter side
func (b Bounds) scale() float64 {
	dLon := b.MaxLon - b.MinLon
	dLat := b.MaxLat - b.MinLat
	if dLat < dLon {
		dLon = dLat
	}
	if dLon < 0 {
		dLon = -dLon
	}
	return dLon / 10.0
}

// boundsFromBound converts orb.Bound into Bounds
func boundsFromBound(bound orb.Bound) Bounds {
	return Bounds{
		MinLon: bound.Left(),
		MinLat: bound.Bottom(),
		MaxLon: bound.Right(),
		MaxLat: bound.Top(),
	}
}

// ComputeBounds returns min/max of latitude and longitude across given vertices
func ComputeBounds(vertices []*GeoVertex) (Bounds, error) {
	if len(vertices) == 0 {
		return Bounds{}, errors.Wrap(ErrEmptyGraph, "can't compute bounds")
	}
	first := true
	var bound orb.Bound
	for _, v := range vertices {
		if first {
			bound = v.Point().Bound()
			first = false
			continue
		}
		bound = bound.Extend(v.Point())
	}
	return boundsFromBound(bound), nil
}

// ParseBounds parses 'minlon,minlat,maxlon,maxlat'
func ParseBounds(str string) (Bounds, error) {
	parts := strings.Split(strings.TrimSpace(str), ",")
	if len(parts) != 4 {
		return Bounds{}, errors.Wrapf(ErrBadBounds, "expected 4 comma separated values, got '%s'", str)
	}
	values := [4]float64{}
	for i := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return Bounds{}, errors.Wrapf(ErrBadBounds, "value #%d of '%s': %s", i, str, err.Error())
		}
		values[i] = v
	}
	b := Bounds{MinLon: values[0], MinLat: values[1], MaxLon: values[2], MaxLat: values[3]}
	if !b.Valid() {
		return Bounds{}, errors.Wrapf(ErrBadBounds, "minimums exceed maximums in '%s'", str)
	}
	return b, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
