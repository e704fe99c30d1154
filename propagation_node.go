package osm2noise

import (
	"fmt"
)

// PropagationNode is a value stored in propagation tree: the point sound travels through
type PropagationNode struct {
	Origin  Vec3
	Type    HitType
	Surface SurfaceID // Surface which has been hit last. Empty for source and listener nodes
	Debug   bool      // Log decisions made while growing the subtree
}

// String returns pretty printed value for PropagationNode
func (pn PropagationNode) String() string {
	return fmt.Sprintf("%s at (%.3f, %.3f, %.3f)", pn.Type, pn.Origin[0], pn.Origin[1], pn.Origin[2])
}

// PathTree is a tree of propagation paths rooted at the noise source. Every leaf is a DIRECT node placed at listener
type PathTree = Tree[PropagationNode]

// Paths returns every root-to-leaf chain which ends in DIRECT node
func Paths(tree *PathTree) [][]NodeID {
	paths := [][]NodeID{}
	for _, leaf := range tree.Leaves(tree.Root()) {
		if tree.Value(leaf).Type != HIT_DIRECT {
			continue
		}
		chain := []NodeID{leaf}
		for parent, ok := tree.Parent(leaf); ok; parent, ok = tree.Parent(parent) {
			chain = append(chain, parent)
		}
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
		paths = append(paths, chain)
	}
	return paths
}
