package network

import (
	"fmt"
	"sort"

	"netcoverage-sim/internal/simulation"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// EdgeMode selects which ordered pairs are evaluated when building a graph.
type EdgeMode int

const (
	// EdgeSymmetric evaluates every ordered pair (i, j), i != j, against radius(i).
	EdgeSymmetric EdgeMode = iota
	// EdgeLegacy only evaluates pairs with i < j, so an edge never points to a lower index.
	EdgeLegacy
)

// String returns the configuration name of the mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeSymmetric:
		return "symmetric"
	case EdgeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// ParseEdgeMode converts a configuration name into an EdgeMode.
func ParseEdgeMode(name string) (EdgeMode, error) {
	switch name {
	case "symmetric", "":
		return EdgeSymmetric, nil
	case "legacy":
		return EdgeLegacy, nil
	default:
		return 0, fmt.Errorf("unknown edge mode %q", name)
	}
}

// Edge is a directed edge between node indices.
type Edge struct {
	From int
	To   int
}

// ReachabilityGraph is a directed graph over node indices 0..n-1 together with
// the pairwise distance matrix it was derived from.
type ReachabilityGraph struct {
	g         *simple.DirectedGraph
	distances *mat.SymDense
	order     int
}

// BuildGraph computes the pairwise distances of nodes and adds an edge i -> j
// whenever distance(i, j) < radius(i). The mode decides whether pairs with
// i > j are evaluated at all.
func BuildGraph(nodes []simulation.Node, mode EdgeMode) *ReachabilityGraph {
	n := len(nodes)
	rg := &ReachabilityGraph{
		g:     simple.NewDirectedGraph(),
		order: n,
	}
	for i := 0; i < n; i++ {
		rg.g.AddNode(simple.Node(i))
	}
	if n == 0 {
		return rg
	}

	rg.distances = DistanceMatrix(nodes)
	for i := 0; i < n; i++ {
		start := 0
		if mode == EdgeLegacy {
			start = i + 1
		}
		for j := start; j < n; j++ {
			if i == j {
				continue
			}
			if rg.distances.At(i, j) < nodes[i].Radius {
				rg.g.SetEdge(rg.g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	return rg
}

// DistanceMatrix returns the symmetric matrix of Euclidean distances between nodes.
// It returns nil for an empty node slice.
func DistanceMatrix(nodes []simulation.Node) *mat.SymDense {
	n := len(nodes)
	if n == 0 {
		return nil
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, nodes[i].DistanceTo(nodes[j]))
		}
	}
	return d
}

// Order returns the number of vertices.
func (rg *ReachabilityGraph) Order() int {
	return rg.order
}

// Size returns the number of directed edges.
func (rg *ReachabilityGraph) Size() int {
	return rg.g.Edges().Len()
}

// HasEdge reports whether the directed edge from -> to exists.
func (rg *ReachabilityGraph) HasEdge(from, to int) bool {
	return rg.g.HasEdgeFromTo(int64(from), int64(to))
}

// Distance returns the distance between nodes i and j.
func (rg *ReachabilityGraph) Distance(i, j int) float64 {
	return rg.distances.At(i, j)
}

// Edges returns all directed edges ordered by (From, To).
func (rg *ReachabilityGraph) Edges() []Edge {
	it := rg.g.Edges()
	edges := make([]Edge, 0, it.Len())
	for it.Next() {
		e := it.Edge()
		edges = append(edges, Edge{From: int(e.From().ID()), To: int(e.To().ID())})
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].From != edges[b].From {
			return edges[a].From < edges[b].From
		}
		return edges[a].To < edges[b].To
	})
	return edges
}

// Directed exposes the underlying gonum graph.
func (rg *ReachabilityGraph) Directed() graph.Directed {
	return rg.g
}
