// Package graph holds the fixed, positionally-indexed undirected graph the
// sampler operates over. Node ids are always 0..N-1; the gml package is
// responsible for translating whatever ids a GML file declares into that
// positional space before a Graph is built.
package graph

import (
	"fmt"

	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// Edge is an unordered pair of positional node ids, source < target.
type Edge struct {
	Source int
	Target int
}

// Graph is an undirected, unweighted, loop-free graph over nodes 0..N-1.
// Each undirected edge appears exactly once in Edges, with Source < Target.
type Graph struct {
	numNodes int
	edges    []Edge
	adj      [][]int // adj[u] lists every v with an edge (u,v), built once in New
}

// New validates and builds a Graph from a node count and an edge list.
// Edges are normalized to Source < Target; duplicate edges and self-loops
// are rejected since the sampler's closed-form likelihood assumes a simple
// graph.
func New(numNodes int, edges []Edge) (*Graph, error) {
	if numNodes <= 0 {
		return nil, apperrors.New(apperrors.CodeConfigError, "graph must have at least one node")
	}

	seen := make(map[Edge]struct{}, len(edges))
	normalized := make([]Edge, 0, len(edges))
	for _, e := range edges {
		u, v := e.Source, e.Target
		if u < 0 || u >= numNodes || v < 0 || v >= numNodes {
			return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("edge (%d,%d) references a node outside [0,%d)", u, v, numNodes))
		}
		if u == v {
			return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("self-loop at node %d is not supported", u))
		}
		if u > v {
			u, v = v, u
		}
		key := Edge{u, v}
		if _, dup := seen[key]; dup {
			return nil, apperrors.New(apperrors.CodeConfigError, fmt.Sprintf("duplicate edge (%d,%d)", u, v))
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}

	adj := make([][]int, numNodes)
	for _, e := range normalized {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	return &Graph{numNodes: numNodes, edges: normalized, adj: adj}, nil
}

// NumNodes returns N.
func (g *Graph) NumNodes() int { return g.numNodes }

// Edges returns the graph's normalized edge list, Source < Target, each
// undirected edge listed once. The caller must not mutate the result.
func (g *Graph) Edges() []Edge { return g.edges }

// NumEdges returns |E|.
func (g *Graph) NumEdges() int { return len(g.edges) }

// HasEdge reports whether an edge between u and v exists, regardless of
// argument order.
func (g *Graph) HasEdge(u, v int) bool {
	for _, w := range g.adj[u] {
		if w == v {
			return true
		}
	}
	return false
}

// Neighbors returns u's adjacency list. The caller must not mutate the
// result; this is the no-allocation view the sampler's incremental counter
// update walks for every move.
func (g *Graph) Neighbors(u int) []int { return g.adj[u] }

// IncidentTo returns every edge with exactly one endpoint equal to u,
// paired with the other endpoint. Allocates; prefer Neighbors on the hot
// path.
func (g *Graph) IncidentTo(u int) []Edge {
	out := make([]Edge, 0, len(g.adj[u]))
	for _, v := range g.adj[u] {
		if u < v {
			out = append(out, Edge{u, v})
		} else {
			out = append(out, Edge{v, u})
		}
	}
	return out
}

// Other returns the endpoint of e that is not u. Panics if u is not an
// endpoint of e; callers only call this after IncidentTo.
func (e Edge) Other(u int) int {
	switch u {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	default:
		panic(fmt.Sprintf("node %d is not an endpoint of edge (%d,%d)", u, e.Source, e.Target))
	}
}
