package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

/*
		 |                         |
		 X                         Y
		/ \     rotateLeft(X)     / \
	   L   Y    ============>    X   Yr
		  / \                   / \
		Yl   Yr                L   Yl
*/
// rotateLeft lifts x.right into the slot of x and returns it.
// refresh recomputes the derived fields, x first and then the lifted node.
func rotateLeft[K infra.OrderedKey](root **node[K], x *node[K], refresh func(*node[K])) *node[K] {
	if x.isNilLeaf() || x.right.isNilLeaf() {
		panic(infra.NewViolation("[tree] left rotate node x is nil or x.right is nil"))
	}

	p, y := x.parent, x.right
	dir := x.direction()
	x.setRight(y.left)
	y.setLeft(x)
	relink(root, p, y, dir)

	if refresh != nil {
		refresh(x)
		refresh(y)
	}
	return y
}

/*
		   |                         |
		   X                         Y
		  / \    rotateRight(X)     / \
		 Y   R   ============>    Yl   X
		/ \                           / \
	  Yl   Yr                       Yr   R
*/
func rotateRight[K infra.OrderedKey](root **node[K], x *node[K], refresh func(*node[K])) *node[K] {
	if x.isNilLeaf() || x.left.isNilLeaf() {
		panic(infra.NewViolation("[tree] right rotate node x is nil or x.left is nil"))
	}

	p, y := x.parent, x.left
	dir := x.direction()
	x.setLeft(y.right)
	y.setRight(x)
	relink(root, p, y, dir)

	if refresh != nil {
		refresh(x)
		refresh(y)
	}
	return y
}

// relink puts y into the slot that has been held by its old parent.
func relink[K infra.OrderedKey](root **node[K], p, y *node[K], dir Direction) {
	switch dir {
	case Root:
		*root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		panic(infra.NewViolation("[tree] unknown node direction to rotate"))
	}
	y.parent = p
}
