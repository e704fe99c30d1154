package osm2noise

// NodeID is a stable index of a node inside Tree
type NodeID int

const (
	noParent = NodeID(-1)
)

type treeNode[T any] struct {
	value    T
	parent   NodeID
	children []NodeID
	alive    bool
}

// Tree is an ordered rose tree stored in an arena.
//
// Nodes are addressed by NodeID which never changes during lifetime of the tree. Removed nodes
// keep their slot (marked as dead), so identifiers handed out earlier never point to another node.
type Tree[T any] struct {
	nodes []treeNode[T]
	live  int
}

// NewTree returns tree with single root node holding given value
func NewTree[T any](root T) *Tree[T] {
	return &Tree[T]{
		nodes: []treeNode[T]{{value: root, parent: noParent, alive: true}},
		live:  1,
	}
}

// Root returns identifier of root node
func (tree *Tree[T]) Root() NodeID {
	return 0
}

// Len returns number of live nodes
func (tree *Tree[T]) Len() int {
	return tree.live
}

// Alive checks if node is still a part of the tree
func (tree *Tree[T]) Alive(id NodeID) bool {
	if id < 0 || int(id) >= len(tree.nodes) {
		return false
	}
	return tree.nodes[id].alive
}

// Value returns value stored in node
func (tree *Tree[T]) Value(id NodeID) T {
	return tree.nodes[id].value
}

// Parent returns parent of the node. Second value is false for root and removed nodes
func (tree *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	if !tree.Alive(id) {
		return noParent, false
	}
	parent := tree.nodes[id].parent
	return parent, parent != noParent
}

// Children returns copy of ordered children list
func (tree *Tree[T]) Children(id NodeID) []NodeID {
	if !tree.Alive(id) {
		return nil
	}
	children := make([]NodeID, len(tree.nodes[id].children))
	copy(children, tree.nodes[id].children)
	return children
}

// ChildrenCount returns number of direct children
func (tree *Tree[T]) ChildrenCount(id NodeID) int {
	if !tree.Alive(id) {
		return 0
	}
	return len(tree.nodes[id].children)
}

// Child returns i-th child of the node
//
// Note: panics if i is out of range
func (tree *Tree[T]) Child(id NodeID, i int) NodeID {
	return tree.nodes[id].children[i]
}

// AddChild creates new node linked to the given parent and returns its identifier
func (tree *Tree[T]) AddChild(parent NodeID, value T) NodeID {
	id := NodeID(len(tree.nodes))
	tree.nodes = append(tree.nodes, treeNode[T]{value: value, parent: parent, alive: true})
	tree.nodes[parent].children = append(tree.nodes[parent].children, id)
	tree.live++
	return id
}

// RemoveSelf removes node from the tree.
//
// Children of removed node are attached to its parent (preserving their order).
// Removing root discards every descendant, but root itself stays in place.
func (tree *Tree[T]) RemoveSelf(id NodeID) {
	if !tree.Alive(id) {
		return
	}
	node := &tree.nodes[id]
	if node.parent == noParent {
		for _, child := range node.children {
			tree.discard(child)
		}
		node.children = node.children[:0]
		return
	}
	parent := &tree.nodes[node.parent]
	for _, child := range node.children {
		tree.nodes[child].parent = node.parent
		parent.children = append(parent.children, child)
	}
	for i, child := range parent.children {
		if child == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	node.children = nil
	node.parent = noParent
	node.alive = false
	tree.live--
}

// discard kills node and whole its subtree
func (tree *Tree[T]) discard(id NodeID) {
	for _, child := range tree.nodes[id].children {
		tree.discard(child)
	}
	tree.nodes[id].children = nil
	tree.nodes[id].parent = noParent
	tree.nodes[id].alive = false
	tree.live--
}

// Traverse calls action for every live node in pre-order
func (tree *Tree[T]) Traverse(action func(id NodeID, value T)) {
	tree.traverse(tree.Root(), action)
}

func (tree *Tree[T]) traverse(id NodeID, action func(id NodeID, value T)) {
	action(id, tree.nodes[id].value)
	for _, child := range tree.nodes[id].children {
		tree.traverse(child, action)
	}
}

// Reverse calls action for every live node in post-order
func (tree *Tree[T]) Reverse(action func(id NodeID, value T)) {
	tree.reverse(tree.Root(), action)
}

func (tree *Tree[T]) reverse(id NodeID, action func(id NodeID, value T)) {
	for _, child := range tree.nodes[id].children {
		tree.reverse(child, action)
	}
	action(id, tree.nodes[id].value)
}

// Flatten returns values of live nodes in pre-order
func (tree *Tree[T]) Flatten() []T {
	values := make([]T, 0, tree.live)
	tree.Traverse(func(_ NodeID, value T) {
		values = append(values, value)
	})
	return values
}

// Leaves returns identifiers of childless nodes in the subtree of given node (pre-order)
func (tree *Tree[T]) Leaves(id NodeID) []NodeID {
	if !tree.Alive(id) {
		return nil
	}
	leaves := []NodeID{}
	tree.traverse(id, func(nid NodeID, _ T) {
		if len(tree.nodes[nid].children) == 0 {
			leaves = append(leaves, nid)
		}
	})
	return leaves
}
