package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// bsTree is the unbalanced binary search tree, its height follows the
// insertion order and degrades to a list on sorted input.
type bsTree[K infra.OrderedKey] struct {
	treeBase[K]
}

func NewBST[K infra.OrderedKey](opts ...TreeOption) PlainTree[K] {
	return &bsTree[K]{
		treeBase: newTreeBase[K](Plain, nil, opts...),
	}
}

func (t *bsTree[K]) Root() BSTNode[K] {
	if t.root.isNilLeaf() {
		return nil
	}
	return t.root
}

func (t *bsTree[K]) Insert(key K) {
	var p *node[K]
	for x := t.root; !x.isNilLeaf(); {
		p = x
		if /* duplicate */ key == x.key {
			return
		} else if key < x.key {
			x = x.left
		} else {
			x = x.right
		}
	}

	z := newNode[K](key, nil)
	if p == nil {
		t.root = z
	} else if key < p.key {
		p.setLeft(z)
	} else {
		p.setRight(z)
	}
	t.count++
}

// Delete copies the successor key into a node with two children
// and unlinks the successor instead, which has no left child.
func (t *bsTree[K]) Delete(key K) bool {
	z := t.lookup(key)
	if z == nil {
		return false
	}

	if !z.left.isNilLeaf() && !z.right.isNilLeaf() {
		succ := z.right.minimum()
		t.debug("delete by successor", zap.Any("key", key), zap.Any("succ", succ.key))
		z.key = succ.key
		z = succ
	}

	child := z.left
	if child.isNilLeaf() {
		child = z.right
	}
	switch z.direction() {
	case Root:
		t.root = child
		if !child.isNilLeaf() {
			child.parent = nil
		}
	case Left:
		z.parent.setLeft(child)
	case Right:
		z.parent.setRight(child)
	default:
	}
	z.parent, z.left, z.right = nil, nil, nil
	t.count--
	return true
}

func (t *bsTree[K]) Depth(key K) (int, bool) {
	depth := 0
	for aux := t.root; !aux.isNilLeaf(); depth++ {
		if key == aux.key {
			return depth, true
		} else if key < aux.key {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return 0, false
}

// IsBalanced reports whether the subtree heights differ by at most one
// at every node. Nothing keeps a plain tree balanced.
func (t *bsTree[K]) IsBalanced() bool {
	_, ok := checkBalance(t.root, false)
	return ok
}
