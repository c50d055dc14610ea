package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/LdDl/osmnav"
)

// testMap is a chain 1-2-3-4 with detached way 5-6
const testMap = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="osmnav-test">
 <node id="1" lat="55.75" lon="37.6" version="1"/>
 <node id="2" lat="55.751" lon="37.605" version="1"/>
 <node id="3" lat="55.752" lon="37.61" version="1"/>
 <node id="4" lat="55.753" lon="37.615" version="1"/>
 <node id="5" lat="55.76" lon="37.62" version="1"/>
 <node id="6" lat="55.761" lon="37.625" version="1"/>
 <way id="100" version="1">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <nd ref="4"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="101" version="1">
  <nd ref="5"/>
  <nd ref="6"/>
  <tag k="highway" v="primary"/>
 </way>
</osm>
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), append([]string{"--log-file="}, args...), &stdout, &stderr)
	return stdout.String(), err
}

func TestShowNodesList(t *testing.T) {
	mapFile := writeFile(t, "map.osm", testMap)
	out, err := run(t, "show-nodes", mapFile)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("Must print 4 vertices of the largest component, but got:\n%s", out)
	}
	if lines[0] != "1 : 55.75, 37.6" {
		t.Errorf("Wrong first line: '%s'", lines[0])
	}
}

func TestShowNodesHighlight(t *testing.T) {
	mapFile := writeFile(t, "map.osm", testMap)
	outFile := filepath.Join(t.TempDir(), "nodes.dot")
	if _, err := run(t, "show-nodes", mapFile, "1", "3", outFile); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	b, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Can't read output: %s", err)
	}
	if strings.Count(string(b), "color=red") != 2 {
		t.Errorf("Exactly two vertices must be highlighted:\n%s", string(b))
	}

	// Coordinates are snapped to the nearest vertices
	outFile = filepath.Join(t.TempDir(), "coords.dot")
	if _, err := run(t, "show-nodes", mapFile, "55.7501", "37.6001", "55.7529", "37.6149", outFile); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	b, err = os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Can't read output: %s", err)
	}
	if !strings.Contains(string(b), `"4" [shape=point, comment="55.753,37.615!", pos="37.615,55.753!", color=red`) {
		t.Errorf("Vertex 4 must be highlighted:\n%s", string(b))
	}

	_, err = run(t, "show-nodes", mapFile, "1", "5", filepath.Join(t.TempDir(), "bad.dot"))
	if !errors.Is(err, osmnav.ErrVertexNotFound) {
		t.Errorf("Vertex out of the largest component must produce ErrVertexNotFound, but got %v", err)
	}
	if _, err := run(t, "show-nodes", mapFile, "1", "3"); err == nil {
		t.Errorf("Wrong number of arguments must be rejected")
	}
}

func TestMidist(t *testing.T) {
	mapFile := writeFile(t, "map.osm", testMap)
	for _, engine := range []string{engineDijkstra, engineCH} {
		outFile := filepath.Join(t.TempDir(), "route.dot")
		out, err := run(t, "--engine", engine, "midist", "--route-format", "wkt", mapFile, "1", "4", outFile)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", engine, err)
		}
		if !strings.Contains(out, "Travel between chosen points will take approximately") || !strings.Contains(out, "minutes.") {
			t.Errorf("%s: travel time message is missing:\n%s", engine, out)
		}
		if !strings.Contains(out, "LINESTRING(37.6 55.75,37.605 55.751,37.61 55.752,37.615 55.753)") {
			t.Errorf("%s: route geometry is missing:\n%s", engine, out)
		}
		b, err := os.ReadFile(outFile)
		if err != nil {
			t.Fatalf("Can't read output: %s", err)
		}
		if strings.Count(string(b), "penwidth=3") != 3 {
			t.Errorf("%s: three edges must be emphasized:\n%s", engine, string(b))
		}
	}
}

func TestMidistCoordinates(t *testing.T) {
	mapFile := writeFile(t, "map.osm", testMap)
	outFile := filepath.Join(t.TempDir(), "route.dot")
	out, err := run(t, "midist", "--route-format", "geojson", mapFile, "55.7501", "37.6001", "55.7519", "37.6099", outFile)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !strings.Contains(out, `"type":"LineString"`) {
		t.Errorf("GeoJSON route is missing:\n%s", out)
	}
	b, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Can't read output: %s", err)
	}
	dot := string(b)
	// Endpoints 1 and 3 plus edges 1-2 and 2-3
	if strings.Count(dot, "height=0.2") != 2 || strings.Count(dot, "penwidth=3") != 2 {
		t.Errorf("Both path and its endpoints must be highlighted:\n%s", dot)
	}
}

// southMap is a chain 1-2-3 south of the equator and west of Greenwich
const southMap = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="osmnav-test">
 <node id="1" lat="-33.9" lon="-18.4" version="1"/>
 <node id="2" lat="-33.899" lon="-18.395" version="1"/>
 <node id="3" lat="-33.898" lon="-18.39" version="1"/>
 <way id="100" version="1">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="highway" v="residential"/>
 </way>
</osm>
`

func TestNegativeCoordinates(t *testing.T) {
	mapFile := writeFile(t, "map.osm", southMap)
	outFile := filepath.Join(t.TempDir(), "route.dot")
	out, err := run(t, "midist", "--route-format", "wkt", mapFile, "-33.9001", "-18.4001", "-33.8979", "-18.3899", outFile)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !strings.Contains(out, "LINESTRING(-18.4 -33.9,-18.395 -33.899,-18.39 -33.898)") {
		t.Errorf("Route between negative coordinates is missing:\n%s", out)
	}

	outFile = filepath.Join(t.TempDir(), "nodes.dot")
	if _, err := run(t, "show-nodes", mapFile, "-33.9", "-18.4", "-33.898", "-18.39", outFile); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	b, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Can't read output: %s", err)
	}
	if strings.Count(string(b), "color=red") != 2 {
		t.Errorf("Exactly two vertices must be highlighted:\n%s", string(b))
	}
}

func TestMidistErrors(t *testing.T) {
	mapFile := writeFile(t, "map.osm", testMap)
	outFile := filepath.Join(t.TempDir(), "route.dot")
	if _, err := run(t, "midist", mapFile, "1", "4"); err == nil {
		t.Errorf("Wrong number of arguments must be rejected")
	}
	if _, err := run(t, "midist", "--route-format", "kml", mapFile, "1", "4", outFile); err == nil {
		t.Errorf("Unknown route format must be rejected")
	}
	if _, err := run(t, "midist", mapFile, "north", "37.6", "55.75", "37.61", outFile); err == nil {
		t.Errorf("Bad coordinate must be rejected")
	}
	if _, err := run(t, "midist", mapFile, "91", "37.6", "55.75", "37.61", outFile); err == nil {
		t.Errorf("Latitude out of range must be rejected")
	}
	if _, err := run(t, "midist", filepath.Join(t.TempDir(), "absent.osm"), "1", "4", outFile); err == nil {
		t.Errorf("Absent map must be rejected")
	}
	if _, err := run(t, "--engine", "astar", "midist", mapFile, "1", "4", outFile); err == nil {
		t.Errorf("Unknown engine must be rejected")
	}
}

func TestExport(t *testing.T) {
	mapFile := writeFile(t, "map.osm", testMap)
	dir := t.TempDir()
	if _, err := run(t, "export", mapFile, filepath.Join(dir, "map.csv")); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	for _, name := range []string{"map.csv", "map_vertices.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("File %s must exist: %s", name, err)
		}
	}

	// Exported diagram is a valid map by itself
	dotFile := filepath.Join(dir, "map.dot")
	if _, err := run(t, "export", mapFile, dotFile); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	out, err := run(t, "show-nodes", dotFile)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if strings.Count(out, "\n") != 4 {
		t.Errorf("Diagram must contain 4 vertices, but got:\n%s", out)
	}

	if _, err := run(t, "export", mapFile, filepath.Join(dir, "map.pdf")); !errors.Is(err, osmnav.ErrUnsupportedFormat) {
		t.Errorf("Unsupported output must produce ErrUnsupportedFormat, but got %v", err)
	}
}

func TestSplitTags(t *testing.T) {
	tags := splitTags(" primary, ,secondary,")
	if len(tags) != 2 || tags[0] != "primary" || tags[1] != "secondary" {
		t.Errorf("Wrong tags: %v", tags)
	}
}
