package graph

import (
	"slices"

	"github.com/psptools/psplib/pkg/instance"
)

// Edge is a directed precedence edge between two jobs.
type Edge struct {
	From instance.JobID
	To   instance.JobID
}

// Graph is a directed precedence graph: one node per job ID, one edge per
// precedence, predecessor → successor. Graphs are immutable after
// [FromInstance] and safe for concurrent reads.
type Graph struct {
	nodes   []instance.JobID
	nodeSet map[instance.JobID]bool
	edges   []Edge
}

// FromInstance builds the precedence graph of an instance. Jobs listed in
// exclude are omitted together with their incident edges; this is commonly
// used to drop the dummy supersource and sink jobs before visualization.
//
// Nodes are returned in ascending ID order; edges preserve the instance's
// precedence order. Duplicate precedences yield duplicate edges.
func FromInstance(in *instance.Instance, exclude ...instance.JobID) *Graph {
	excluded := make(map[instance.JobID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	g := &Graph{nodeSet: make(map[instance.JobID]bool, len(in.Jobs))}
	for _, j := range in.Jobs {
		if excluded[j.ID] || g.nodeSet[j.ID] {
			continue
		}
		g.nodeSet[j.ID] = true
		g.nodes = append(g.nodes, j.ID)
	}
	slices.Sort(g.nodes)

	for _, p := range in.Precedences {
		if excluded[p.Predecessor] || excluded[p.Successor] {
			continue
		}
		g.edges = append(g.edges, Edge{From: p.Predecessor, To: p.Successor})
	}

	return g
}

// Nodes returns the job IDs in ascending order.
// The returned slice is shared; callers must not mutate it.
func (g *Graph) Nodes() []instance.JobID {
	return g.nodes
}

// Edges returns the edges in precedence order.
// The returned slice is shared; callers must not mutate it.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// HasNode reports whether the graph contains the given job ID.
func (g *Graph) HasNode(id instance.JobID) bool {
	return g.nodeSet[id]
}
