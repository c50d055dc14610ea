package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/LdDl/osmnav"
)

// pointsQuery is a pair of endpoints given either by vertex identifiers or by coordinates
type pointsQuery struct {
	ids       [2]osmnav.VertexID
	coords    [4]float64
	hasCoords bool
	out       string
}

// parsePointsQuery parses "<id1> <id2> <out>" or "<lat1> <lon1> <lat2> <lon2> <out>"
func parsePointsQuery(args []string) (pointsQuery, error) {
	q := pointsQuery{}
	switch len(args) {
	case 3:
		q.ids = [2]osmnav.VertexID{osmnav.VertexID(args[0]), osmnav.VertexID(args[1])}
		q.out = args[2]
	case 5:
		for i := 0; i < 4; i++ {
			value, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return q, errors.Errorf("bad coordinate '%s'", args[i])
			}
			q.coords[i] = value
		}
		if q.coords[0] < -90 || q.coords[0] > 90 || q.coords[2] < -90 || q.coords[2] > 90 {
			return q, errors.New("latitude must be in range [-90, 90]")
		}
		if q.coords[1] < -180 || q.coords[1] > 180 || q.coords[3] < -180 || q.coords[3] > 180 {
			return q, errors.New("longitude must be in range [-180, 180]")
		}
		q.hasCoords = true
		q.out = args[4]
	default:
		return q, errors.Errorf("expected two vertex ids or two coordinate pairs followed by output file, got %d arguments", len(args))
	}
	return q, nil
}

// resolve returns vertices of query. Coordinates are snapped to the nearest vertices
func (q pointsQuery) resolve(rg *osmnav.RoutingGraph) (osmnav.VertexID, osmnav.VertexID, error) {
	if !q.hasCoords {
		for _, id := range q.ids {
			if _, ok := rg.Vertex(id); !ok {
				return "", "", errors.Wrapf(osmnav.ErrVertexNotFound, "vertex with id '%s' does not exist", id)
			}
		}
		return q.ids[0], q.ids[1], nil
	}
	from, err := rg.NearestVertex(q.coords[0], q.coords[1])
	if err != nil {
		return "", "", err
	}
	to, err := rg.NearestVertex(q.coords[2], q.coords[3])
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func (a *app) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <map> <out>",
		Short: "Export road network as Graphviz diagram (.dot, .gv, .svg, .png, .jpg) or CSV tables (.csv)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rg, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			st := time.Now()
			if err := osmnav.ExportFile(cmd.Context(), rg, nil, args[1]); err != nil {
				return errors.Wrap(err, "can't export graph")
			}
			a.logger.Info("Graph exported", "file", args[1], "vertices", rg.Len(), "edges", len(rg.Edges()), "elapsed", time.Since(st))
			return nil
		},
	}
}

func (a *app) showNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-nodes <map> [<id1> <id2> <out> | <lat1> <lon1> <lat2> <lon2> <out>]",
		Short: "Print vertices of road network or highlight two of them on diagram",
		Long: `Without extra arguments every vertex is printed as "id : lat, lon".
With two vertex ids (or two coordinate pairs snapped to the nearest vertices) the diagram is written to <out> with these vertices highlighted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 4 && len(args) != 6 {
				return errors.Errorf("show-nodes expects 1, 4 or 6 arguments, got %d", len(args))
			}
			rg, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				w := cmd.OutOrStdout()
				for _, v := range rg.Vertices() {
					fmt.Fprintln(w, v.String())
				}
				return nil
			}
			q, err := parsePointsQuery(args[1:])
			if err != nil {
				return err
			}
			from, to, err := q.resolve(rg)
			if err != nil {
				return err
			}
			hl := osmnav.NewHighlight(rg)
			if err := hl.HighlightVertices(from, to); err != nil {
				return err
			}
			if err := osmnav.ExportFile(cmd.Context(), rg, hl, q.out); err != nil {
				return errors.Wrap(err, "can't export graph")
			}
			a.logger.Info("Vertices highlighted", "from", from, "to", to, "file", q.out)
			return nil
		},
	}
	// Negative coordinates must not be taken for shorthand flags
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *app) midistCommand() *cobra.Command {
	var routeFormat string
	cmd := &cobra.Command{
		Use:   "midist [flags] <map> (<id1> <id2> | <lat1> <lon1> <lat2> <lon2>) <out>",
		Short: "Find fastest route between two points and highlight it on diagram",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 4 && len(args) != 6 {
				return errors.Errorf("midist expects 4 or 6 arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			routeFormat = strings.ToLower(routeFormat)
			switch routeFormat {
			case "", "wkt", "geojson":
			default:
				return errors.Errorf("unknown route format '%s'. Expected values: wkt / geojson", routeFormat)
			}
			q, err := parsePointsQuery(args[1:])
			if err != nil {
				return err
			}
			rg, err := a.loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			from, to, err := q.resolve(rg)
			if err != nil {
				return err
			}
			router, err := a.router(rg)
			if err != nil {
				return err
			}

			ctx, cancel := a.queryContext(cmd.Context())
			defer cancel()
			st := time.Now()
			path, err := router.ShortestPath(ctx, from, to)
			if err != nil {
				return err
			}
			a.logger.Debug("Route found", "from", from, "to", to, "vertices", len(path.Vertices), "elapsed", time.Since(st))

			hl := osmnav.NewHighlight(rg)
			if err := hl.HighlightPath(path); err != nil {
				return err
			}
			if q.hasCoords {
				if err := hl.HighlightVertices(from, to); err != nil {
					return err
				}
			}
			if err := osmnav.ExportFile(cmd.Context(), rg, hl, q.out); err != nil {
				return errors.Wrap(err, "can't export graph")
			}

			w := cmd.OutOrStdout()
			minutes := styleNumber.Render(fmt.Sprintf("%0.2f", path.Minutes))
			fmt.Fprintf(w, "Travel between chosen points will take approximately %s minutes.\n", minutes)
			switch routeFormat {
			case "wkt":
				fmt.Fprintln(w, rg.PrepareWKTLinestring(path))
			case "geojson":
				geom, err := rg.PrepareGeoJSONLinestring(path)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, geom)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&routeFormat, "route-format", "", "Print route geometry. Expected values: wkt / geojson")
	// Flags go before <map>, so negative coordinates stay positional
	cmd.Flags().SetInterspersed(false)
	return cmd
}
