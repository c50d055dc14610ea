package osmnav

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

// Diagram is vertex/edge/bounds payload exchanged with Graphviz files
type Diagram struct {
	Vertices []*GeoVertex
	Edges    []Edge
	Bounds   Bounds
}

// ToDOT converts routing graph to Graphviz DOT format. Positions are pinned, so 'neato' keeps map geometry.
// Highlight could be nil
func ToDOT(rg *RoutingGraph, hl *Highlight) string {
	var buf bytes.Buffer
	bounds := rg.Bounds()
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  truecolor=true;\n")
	buf.WriteString("  margin=0;\n")
	buf.WriteString("  outputorder=nodesfirst;\n")
	if scale := bounds.scale(); scale > 0 {
		fmt.Fprintf(&buf, "  inputscale=%s;\n", quoteDOT(formatFloat(scale)))
	}
	fmt.Fprintf(&buf, "  bb=%s;\n", quoteDOT(bounds.String()))
	buf.WriteString("\n")

	for _, v := range rg.Vertices() {
		attrs := []string{
			"shape=point",
			"comment="+quoteDOT(formatFloat(v.Lat)+","+formatFloat(v.Lon)+"!"),
			"pos="+quoteDOT(formatFloat(v.X)+","+formatFloat(v.Y)+"!"),
		}
		if hl.VertexHighlighted(v.ID) {
			attrs = append(attrs, "color=red", "height=0.2", "fontsize=0")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", quoteDOT(string(v.ID)), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range rg.Edges() {
		attrs := []string{
			"arrowhead=none",
			"speed="+quoteDOT(formatFloat(e.Edge.MaxSpeed)),
		}
		if e.Edge.OneWay {
			attrs = append(attrs, "oneway=true")
		}
		if hl.EdgeEmphasized(e.Edge) {
			attrs = append(attrs, "color=red", "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", quoteDOT(string(e.Edge.V1)), quoteDOT(string(e.Edge.V2)), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT writes DOT representation of graph to w
func WriteDOT(w io.Writer, rg *RoutingGraph, hl *Highlight) error {
	_, err := io.WriteString(w, ToDOT(rg, hl))
	return err
}

// ReadDiagram reads DOT document previously written by WriteDOT (or processed by Graphviz afterwards).
// Document is parsed by Graphviz itself, so its escapes and line continuations are understood.
// Node must carry 'comment' with "lat,lon" unless it is touched by edges only: such edges are skipped
// (or abort reading with ErrMissingNode when strictMode is set). Edge without 'speed' gets defaultSpeed
func ReadDiagram(r io.Reader, defaultSpeed float64, strictMode bool, logger *log.Logger) (*Diagram, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "can't read DOT")
	}
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse DOT")
	}
	if g == nil {
		return nil, errors.New("can't parse DOT: document contains no graph")
	}
	defer g.Close()

	nodes, err := dotNodes(g)
	if err != nil {
		return nil, err
	}
	diagram := &Diagram{
		Vertices: make([]*GeoVertex, 0, len(nodes)),
	}
	// Nodes without geographic position, value tells whether any edge touches node
	unpositioned := make(map[string]bool)
	positioned := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		id, err := n.Name()
		if err != nil {
			return nil, errors.Wrap(err, "node name")
		}
		comment := n.GetStr("comment")
		if comment == "" {
			unpositioned[id] = false
			continue
		}
		lat, lon, err := parsePair(comment)
		if err != nil {
			return nil, errors.Wrapf(err, "node '%s' comment", id)
		}
		v := &GeoVertex{ID: VertexID(id), Lat: lat, Lon: lon, X: lon, Y: lat}
		if pos := n.GetStr("pos"); pos != "" {
			v.X, v.Y, err = parsePair(pos)
			if err != nil {
				return nil, errors.Wrapf(err, "node '%s' pos", id)
			}
		}
		diagram.Vertices = append(diagram.Vertices, v)
		positioned[id] = struct{}{}
	}

	i := 0
	for _, n := range nodes {
		for e, err := g.FirstOut(n); e != nil || err != nil; e, err = g.NextOut(e) {
			if err != nil {
				return nil, errors.Wrap(err, "edge iteration")
			}
			from, to, err := dotEdgeEnds(e)
			if err != nil {
				return nil, errors.Wrapf(err, "edge #%d", i)
			}
			_, okFrom := positioned[from]
			_, okTo := positioned[to]
			if !okFrom || !okTo {
				for _, id := range []string{from, to} {
					if _, ok := unpositioned[id]; ok {
						unpositioned[id] = true
					}
				}
				if strictMode {
					return nil, errors.Wrapf(ErrMissingNode, "edge #%d %s -- %s", i, from, to)
				}
				logger.Warn("Skipping edge with missing node", "from", from, "to", to)
				i++
				continue
			}
			edge := Edge{
				V1:       VertexID(from),
				V2:       VertexID(to),
				MaxSpeed: defaultSpeed,
			}
			if speed := e.GetStr("speed"); speed != "" {
				edge.MaxSpeed, err = strconv.ParseFloat(strings.TrimSpace(speed), 64)
				if err != nil {
					return nil, errors.Wrapf(ErrInvalidEdge, "edge #%d %s -- %s: speed '%s'", i, from, to, speed)
				}
			}
			if oneway := e.GetStr("oneway"); oneway != "" {
				edge.OneWay = parseOneway(oneway)
			}
			diagram.Edges = append(diagram.Edges, edge)
			i++
		}
	}
	for _, n := range nodes {
		id, _ := n.Name()
		if touched, ok := unpositioned[id]; ok && !touched {
			return nil, errors.Errorf("node '%s' has no 'comment' with geographic position", id)
		}
	}

	if bb := g.GetStr("bb"); bb != "" {
		diagram.Bounds, err = ParseBounds(bb)
		if err != nil {
			return nil, err
		}
	} else {
		diagram.Bounds, err = ComputeBounds(diagram.Vertices)
		if err != nil {
			return nil, err
		}
	}
	return diagram, nil
}

// RoutingGraph builds topology and routing graph from diagram
func (d *Diagram) RoutingGraph(options ...func(*RoutingGraph)) (*Graph, *RoutingGraph, error) {
	if len(d.Vertices) == 0 {
		return nil, nil, errors.Wrap(ErrEmptyGraph, "diagram has no positioned nodes")
	}
	vertices := make(map[VertexID]Vertex, len(d.Vertices))
	for _, v := range d.Vertices {
		vertices[v.ID] = Vertex{ID: v.ID}
	}
	graph, err := NewGraph(vertices, d.Edges)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't build graph")
	}
	rg, err := NewRoutingGraph(graph, d.Vertices, d.Bounds, options...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't prepare routing graph")
	}
	return graph, rg, nil
}

// dotNodes lists nodes of parsed document in declaration order
func dotNodes(g *graphviz.Graph) ([]*graphviz.Node, error) {
	nodes := []*graphviz.Node{}
	for n, err := g.FirstNode(); n != nil || err != nil; n, err = g.NextNode(n) {
		if err != nil {
			return nil, errors.Wrap(err, "node iteration")
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// dotEdgeEnds returns names of edge tail and head. Undirected edge keeps order it was written in
func dotEdgeEnds(e *graphviz.Edge) (string, string, error) {
	tail, err := e.Tail()
	if err != nil {
		return "", "", err
	}
	head, err := e.Head()
	if err != nil {
		return "", "", err
	}
	from, err := tail.Name()
	if err != nil {
		return "", "", err
	}
	to, err := head.Name()
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

// quoteDOT makes DOT quoted string. Graphviz keeps backslashes as they are and unescapes '\"' only
func quoteDOT(str string) string {
	return `"` + strings.ReplaceAll(str, `"`, `\"`) + `"`
}

// parsePair parses "a,b" with optional trailing '!' (pinned position in Graphviz)
func parsePair(str string) (float64, float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "!")
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("expected two comma separated values, got '%s'", str)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "first value of '%s'", str)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "second value of '%s'", str)
	}
	return a, b, nil
}

func parseOneway(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "false", "no", "0":
		return false
	default:
		return true
	}
}
