package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=Direction
type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

//go:generate stringer -type=Variant
type Variant uint8

const (
	AVL Variant = iota
	RedBlack
	Splay
	Plain
	Threaded
)

// BSTNode is the read-only view of a tree node.
// Absent children and the parent of the root are reported as nil.
type BSTNode[K infra.OrderedKey] interface {
	Key() K
	Left() BSTNode[K]
	Right() BSTNode[K]
	Parent() BSTNode[K]
}

type AVLNode[K infra.OrderedKey] interface {
	BSTNode[K]
	// Height of a leaf is 1.
	Height() int
	// Balance is height(left) - height(right).
	Balance() int
}

type RBNode[K infra.OrderedKey] interface {
	BSTNode[K]
	Color() RBColor
}

// BST is the surface shared by every tree variant.
// None of the trees is safe for concurrent use, see NewSynchronized.
type BST[K infra.OrderedKey] interface {
	Len() int64
	// Height of an empty tree is 0.
	Height() int
	// Insert of a present key is a no-op.
	Insert(key K)
	Delete(key K) bool
	Search(key K) bool
	Min() (K, bool)
	Max() (K, bool)
	// All yields the keys in ascending order. The sequence
	// can be ranged over again and reads the current tree.
	All() iter.Seq[K]
	// Backward yields the keys in descending order.
	Backward() iter.Seq[K]
	Foreach(action func(idx int64, key K) bool)
	LeafCount() int
	Release()
}

// Traversable trees expose the remaining depth-first and breadth-first orders.
type Traversable[K infra.OrderedKey] interface {
	PreOrder() iter.Seq[K]
	PostOrder() iter.Seq[K]
	LevelOrder() iter.Seq[K]
}

type AVLTree[K infra.OrderedKey] interface {
	BST[K]
	Traversable[K]
	Root() AVLNode[K]
	IsBalanced() bool
}

type RBTree[K infra.OrderedKey] interface {
	BST[K]
	Traversable[K]
	Root() RBNode[K]
	BlackHeight() int
}

// SplayTree restructures itself on Insert, Search, Delete, Min and Max.
// Traversals and Len, Height are not accesses and keep the shape.
type SplayTree[K infra.OrderedKey] interface {
	BST[K]
	Traversable[K]
	Root() BSTNode[K]
}

type PlainTree[K infra.OrderedKey] interface {
	BST[K]
	Traversable[K]
	Root() BSTNode[K]
	// Depth is the number of edges from the root to the key.
	Depth(key K) (int, bool)
	IsBalanced() bool
}

type ThreadedTree[K infra.OrderedKey] interface {
	BST[K]
}

// EventRecorder receives the structural events of the balancing code.
type EventRecorder interface {
	Rotated(variant Variant, dir Direction)
	Rebalanced(variant Variant, scenario string)
	Splayed(depth int)
}
