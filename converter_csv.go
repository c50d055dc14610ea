package osmnav

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ExportToCSV writes edges into fname and vertices into fname with '_vertices' suffix. Separator is ';'
func ExportToCSV(rg *RoutingGraph, fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameEdges := fnameParts[0] + ".csv"
	fnameVertices := fnameParts[0] + "_vertices.csv"

	err := rg.exportEdgesToCSV(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "can't export edges")
	}
	err = rg.exportVerticesToCSV(fnameVertices)
	if err != nil {
		return errors.Wrap(err, "can't export vertices")
	}
	return nil
}

func (rg *RoutingGraph) exportEdgesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"source_vertex", "target_vertex", "max_speed", "one_way", "minutes", "geom"})
	if err != nil {
		return errors.Wrap(err, "can't write header")
	}
	for _, edge := range rg.geoEdges {
		err = writer.Write([]string{
			string(edge.Edge.V1),
			string(edge.Edge.V2),
			formatFloat(edge.Edge.MaxSpeed),
			fmt.Sprintf("%t", edge.Edge.OneWay),
			fmt.Sprintf("%f", rg.edgeMinutes(edge)),
			rg.PrepareWKTLinestring(Path{Vertices: []VertexID{edge.Edge.V1, edge.Edge.V2}}),
		})
		if err != nil {
			return errors.Wrap(err, "can't write edge")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "can't flush edges")
}

func (rg *RoutingGraph) exportVerticesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "lat", "lon", "geom"})
	if err != nil {
		return errors.Wrap(err, "can't write header")
	}
	for _, v := range rg.Vertices() {
		err = writer.Write([]string{
			string(v.ID),
			formatFloat(v.Lat),
			formatFloat(v.Lon),
			PrepareWKTPoint(v),
		})
		if err != nil {
			return errors.Wrap(err, "can't write vertex")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "can't flush vertices")
}
