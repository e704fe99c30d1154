package osm2noise

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// PathGraph is a propagation tree converted into weighted graph.
// Every DIRECT leaf is linked with single listener vertex, so the shortest route from source to listener is the dominant propagation path
type PathGraph struct {
	graph    *ch.Graph
	source   int64
	listener int64
	prepared bool
}

// NewPathGraph builds graph from alive nodes of propagation tree. Edge weight is the length of the segment (meters)
func NewPathGraph(tree *PathTree) (*PathGraph, error) {
	// Listener vertex goes right after the largest node identifier
	maxID := tree.Root()
	tree.Traverse(func(id NodeID, _ PropagationNode) {
		if id > maxID {
			maxID = id
		}
	})
	pg := &PathGraph{
		graph:    &ch.Graph{},
		source:   int64(tree.Root()),
		listener: int64(maxID) + 1,
	}
	err := pg.graph.CreateVertex(pg.source)
	if err != nil {
		return nil, errors.Wrap(err, "Can't create source vertex")
	}
	err = pg.graph.CreateVertex(pg.listener)
	if err != nil {
		return nil, errors.Wrap(err, "Can't create listener vertex")
	}
	var walkErr error
	tree.Traverse(func(id NodeID, node PropagationNode) {
		if walkErr != nil {
			return
		}
		parent, ok := tree.Parent(id)
		if !ok {
			return
		}
		from := int64(parent)
		to := int64(id)
		if err := pg.graph.CreateVertex(to); err != nil {
			walkErr = errors.Wrapf(err, "Can't create vertex for node %d", id)
			return
		}
		if err := pg.graph.AddEdge(from, to, distance(tree.Value(parent).Origin, node.Origin)); err != nil {
			walkErr = errors.Wrapf(err, "Can't add edge %d -> %d", from, to)
			return
		}
		if node.Type == HIT_DIRECT {
			// DIRECT node already sits at the listener position
			if err := pg.graph.AddEdge(to, pg.listener, 0); err != nil {
				walkErr = errors.Wrapf(err, "Can't link node %d with listener", to)
			}
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return pg, nil
}

// ShortestPath returns length of the dominant propagation path and chain of tree nodes it goes through (listener vertex excluded).
// Returns -1 and empty chain when listener is unreachable
func (pg *PathGraph) ShortestPath() (float64, []NodeID) {
	if !pg.prepared {
		pg.graph.PrepareContractionHierarchies()
		pg.prepared = true
	}
	cost, vertices := pg.graph.ShortestPath(pg.source, pg.listener)
	if cost < 0 || len(vertices) == 0 {
		return -1, []NodeID{}
	}
	chain := make([]NodeID, 0, len(vertices))
	for _, v := range vertices {
		if v == pg.listener {
			continue
		}
		chain = append(chain, NodeID(v))
	}
	return cost, chain
}
