package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// node is shared by the AVL, Red-Black, Splay and plain trees.
// The height is only maintained by the AVL tree and the color
// only by the Red-Black tree.
// hasKey is false for nil and for the Red-Black sentinel.
type node[K infra.OrderedKey] struct {
	parent *node[K]
	left   *node[K]
	right  *node[K]
	key    K
	height int
	color  RBColor
	hasKey bool
}

func newNode[K infra.OrderedKey](key K, leaf *node[K]) *node[K] {
	return &node[K]{
		parent: leaf,
		left:   leaf,
		right:  leaf,
		key:    key,
		height: 1,
		hasKey: true,
	}
}

func (n *node[K]) Key() K {
	return n.key
}

func (n *node[K]) Left() BSTNode[K] {
	if n.isNilLeaf() || n.left.isNilLeaf() {
		return nil
	}
	return n.left
}

func (n *node[K]) Right() BSTNode[K] {
	if n.isNilLeaf() || n.right.isNilLeaf() {
		return nil
	}
	return n.right
}

func (n *node[K]) Parent() BSTNode[K] {
	if n.isNilLeaf() || n.parent.isNilLeaf() {
		return nil
	}
	return n.parent
}

func (n *node[K]) Height() int {
	return heightOf(n)
}

func (n *node[K]) Balance() int {
	if n.isNilLeaf() {
		return 0
	}
	return heightOf(n.left) - heightOf(n.right)
}

func (n *node[K]) Color() RBColor {
	if n.isNilLeaf() {
		return Black
	}
	return n.color
}

func (n *node[K]) isNilLeaf() bool {
	return n == nil || !n.hasKey
}

func (n *node[K]) isRed() bool {
	return !n.isNilLeaf() && n.color == Red
}

func (n *node[K]) isBlack() bool {
	return !n.isRed()
}

func (n *node[K]) isLeaf() bool {
	return !n.isNilLeaf() && n.left.isNilLeaf() && n.right.isNilLeaf()
}

func (n *node[K]) direction() Direction {
	if n.isNilLeaf() {
		panic(infra.NewViolation("[tree] nil leaf node without direction"))
	}
	if n.parent.isNilLeaf() {
		return Root
	}
	if n == n.parent.left {
		return Left
	}
	return Right
}

// setLeft never writes through a nil leaf.
func (n *node[K]) setLeft(child *node[K]) {
	n.left = child
	if !child.isNilLeaf() {
		child.parent = n
	}
}

func (n *node[K]) setRight(child *node[K]) {
	n.right = child
	if !child.isNilLeaf() {
		child.parent = n
	}
}

func (n *node[K]) sibling() *node[K] {
	switch n.direction() {
	case Left:
		return n.parent.right
	case Right:
		return n.parent.left
	default:
	}
	return nil
}

func (n *node[K]) minimum() *node[K] {
	aux := n
	for ; !aux.isNilLeaf() && !aux.left.isNilLeaf(); aux = aux.left {
	}
	return aux
}

func (n *node[K]) maximum() *node[K] {
	aux := n
	for ; !aux.isNilLeaf() && !aux.right.isNilLeaf(); aux = aux.right {
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (n *node[K]) succ() *node[K] {
	x := n
	if x.isNilLeaf() {
		return nil
	}
	if !x.right.isNilLeaf() {
		return x.right.minimum()
	}
	aux := x.parent
	// Backtrack to the first ancestor reached from its left subtree.
	for !aux.isNilLeaf() && x == aux.right {
		x = aux
		aux = aux.parent
	}
	if aux.isNilLeaf() {
		return nil
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
func (n *node[K]) pred() *node[K] {
	x := n
	if x.isNilLeaf() {
		return nil
	}
	if !x.left.isNilLeaf() {
		return x.left.maximum()
	}
	aux := x.parent
	for !aux.isNilLeaf() && x == aux.left {
		x = aux
		aux = aux.parent
	}
	if aux.isNilLeaf() {
		return nil
	}
	return aux
}

func heightOf[K infra.OrderedKey](n *node[K]) int {
	if n.isNilLeaf() {
		return 0
	}
	return n.height
}

// measureHeight counts the levels below n without trusting the height field.
func measureHeight[K infra.OrderedKey](n *node[K]) int {
	if n.isNilLeaf() {
		return 0
	}
	h := 0
	level := []*node[K]{n}
	for len(level) > 0 {
		h++
		next := make([]*node[K], 0, len(level)*2)
		for _, aux := range level {
			if !aux.left.isNilLeaf() {
				next = append(next, aux.left)
			}
			if !aux.right.isNilLeaf() {
				next = append(next, aux.right)
			}
		}
		level = next
	}
	return h
}
