// Package algorithms implements the link-analysis and term-weighting layer:
// LinkGraph construction, PageRank, and TF-IDF.
package algorithms

// LinkGraph is a derived, in-memory adjacency structure keyed by URL.
// Every node appears as a key in both Outbound and Inbound, possibly
// mapping to an empty slice.
type LinkGraph struct {
	Nodes    map[string]struct{}
	Outbound map[string][]string
	Inbound  map[string][]string
}

// NewLinkGraph builds an empty graph.
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{
		Nodes:    make(map[string]struct{}),
		Outbound: make(map[string][]string),
		Inbound:  make(map[string][]string),
	}
}

// BuildLinkGraph constructs a LinkGraph from the full node set and the
// resolved (source, target) edges. Every node in nodes appears as a key
// in both adjacency maps even if it has no edges.
func BuildLinkGraph(nodes []string, edges [][2]string) *LinkGraph {
	g := NewLinkGraph()
	for _, n := range nodes {
		g.Nodes[n] = struct{}{}
		if g.Outbound[n] == nil {
			g.Outbound[n] = []string{}
		}
		if g.Inbound[n] == nil {
			g.Inbound[n] = []string{}
		}
	}
	for _, e := range edges {
		src, dst := e[0], e[1]
		if _, ok := g.Nodes[src]; !ok {
			continue
		}
		if _, ok := g.Nodes[dst]; !ok {
			continue
		}
		g.Outbound[src] = append(g.Outbound[src], dst)
		g.Inbound[dst] = append(g.Inbound[dst], src)
	}
	return g
}

// IsDangling reports whether node has no outbound edges.
func (g *LinkGraph) IsDangling(node string) bool {
	return len(g.Outbound[node]) == 0
}
