package osmnav

// Adjacency is undirected neighbourhood of vertices used for connectivity analysis only.
// Keys are kept in insertion order in order to make traversal deterministic.
type Adjacency struct {
	order     []VertexID
	neighbors map[VertexID][]VertexID
}

// NewAdjacency returns empty adjacency
func NewAdjacency() *Adjacency {
	return &Adjacency{
		order:     []VertexID{},
		neighbors: make(map[VertexID][]VertexID),
	}
}

// AddVertex registers vertex without neighbors. Does nothing if vertex is known already
func (adj *Adjacency) AddVertex(v VertexID) {
	if _, ok := adj.neighbors[v]; ok {
		return
	}
	adj.order = append(adj.order, v)
	adj.neighbors[v] = []VertexID{}
}

// Connect adds undirected link between two vertices
func (adj *Adjacency) Connect(v1, v2 VertexID) {
	adj.AddVertex(v1)
	adj.AddVertex(v2)
	adj.neighbors[v1] = append(adj.neighbors[v1], v2)
	adj.neighbors[v2] = append(adj.neighbors[v2], v1)
}

// Len returns number of vertices
func (adj *Adjacency) Len() int {
	return len(adj.order)
}

// Neighbors returns neighbors of given vertex
func (adj *Adjacency) Neighbors(v VertexID) []VertexID {
	return adj.neighbors[v]
}

// ConnectedComponents partitions vertices into connected components.
// Depth-first search uses explicit stack so component size is not limited by call depth
func ConnectedComponents(adj *Adjacency) [][]VertexID {
	components := [][]VertexID{}
	visited := make(map[VertexID]struct{}, adj.Len())
	stack := []VertexID{}
	for _, start := range adj.order {
		if _, ok := visited[start]; ok {
			continue
		}
		component := []VertexID{}
		visited[start] = struct{}{}
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, v)
			neighbors := adj.neighbors[v]
			// Push in reverse so neighbors are expanded in insertion order
			for i := len(neighbors) - 1; i >= 0; i-- {
				n := neighbors[i]
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				stack = append(stack, n)
			}
		}
		components = append(components, component)
	}
	return components
}

// LargestComponent returns the first component with the greatest number of vertices
func LargestComponent(components [][]VertexID) []VertexID {
	var largest []VertexID
	for _, component := range components {
		if len(component) > len(largest) {
			largest = component
		}
	}
	return largest
}
