package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://en.wikipedia.org/wiki/AVL_tree
// Every node keeps |height(left) - height(right)| <= 1,
// so the height stays below 1.44 * log2(n + 2).

type avlTree[K infra.OrderedKey] struct {
	treeBase[K]
}

func NewAVLTree[K infra.OrderedKey](opts ...TreeOption) AVLTree[K] {
	return &avlTree[K]{
		treeBase: newTreeBase[K](AVL, nil, opts...),
	}
}

func refreshHeight[K infra.OrderedKey](n *node[K]) {
	n.height = 1 + max(heightOf(n.left), heightOf(n.right))
}

func (t *avlTree[K]) Root() AVLNode[K] {
	if t.root.isNilLeaf() {
		return nil
	}
	return t.root
}

// Height reads the cached height of the root.
func (t *avlTree[K]) Height() int {
	return heightOf(t.root)
}

func (t *avlTree[K]) Insert(key K) {
	root, added := t.insert(t.root, key)
	t.root = root
	root.parent = nil
	if added {
		t.count++
	}
}

func (t *avlTree[K]) insert(n *node[K], key K) (*node[K], bool) {
	if n.isNilLeaf() {
		return newNode[K](key, nil), true
	}

	var (
		child *node[K]
		added bool
	)
	if /* duplicate */ key == n.key {
		return n, false
	} else if key < n.key {
		child, added = t.insert(n.left, key)
		n.setLeft(child)
	} else {
		child, added = t.insert(n.right, key)
		n.setRight(child)
	}
	if !added {
		return n, false
	}

	refreshHeight(n)
	return t.rebalanceInsert(n, key), true
}

/*
The inserted key decides the shape below the unbalanced node N.

LL: key < N.left.key, rightRotate(N).

	    N            L
	   /            / \
	  L     ==>   LL   N
	 /
	LL

LR: key > N.left.key, leftRotate(N.left) then rightRotate(N).

	  N            N            LR
	 /            /            /  \
	L     ==>   LR     ==>    L    N
	 \          /
	 LR        L

RR and RL are the mirrors.
*/
func (t *avlTree[K]) rebalanceInsert(n *node[K], key K) *node[K] {
	balance := n.Balance()
	switch {
	case /* LL */ balance > 1 && key < n.left.key:
		t.rebalanced("LL", n.key)
		return t.rightRotate(n, refreshHeight[K])
	case /* LR */ balance > 1 && key > n.left.key:
		t.rebalanced("LR", n.key)
		t.leftRotate(n.left, refreshHeight[K])
		return t.rightRotate(n, refreshHeight[K])
	case /* RR */ balance < -1 && key > n.right.key:
		t.rebalanced("RR", n.key)
		return t.leftRotate(n, refreshHeight[K])
	case /* RL */ balance < -1 && key < n.right.key:
		t.rebalanced("RL", n.key)
		t.rightRotate(n.right, refreshHeight[K])
		return t.leftRotate(n, refreshHeight[K])
	default:
	}
	return n
}

func (t *avlTree[K]) Delete(key K) bool {
	root, removed := t.remove(t.root, key)
	t.root = root
	if !root.isNilLeaf() {
		root.parent = nil
	}
	if removed {
		t.count--
	}
	return removed
}

/*
r1: N has at most one child, the child takes the slot of N.

r2: N has two children. The in-order successor S is the minimum
of N.right and has no left child. Copy the key of S into N and
remove S from N.right, which falls into r1.
*/
func (t *avlTree[K]) remove(n *node[K], key K) (*node[K], bool) {
	if n.isNilLeaf() {
		return nil, false
	}

	var (
		child   *node[K]
		removed bool
	)
	if key < n.key {
		child, removed = t.remove(n.left, key)
		n.setLeft(child)
	} else if key > n.key {
		child, removed = t.remove(n.right, key)
		n.setRight(child)
	} else if /* r1 */ n.left.isNilLeaf() || n.right.isNilLeaf() {
		child = n.left
		if child.isNilLeaf() {
			child = n.right
		}
		if !child.isNilLeaf() {
			child.parent = n.parent
		}
		n.parent, n.left, n.right = nil, nil, nil
		return child, true
	} else /* r2 */ {
		succ := n.right.minimum()
		n.key = succ.key
		child, removed = t.remove(n.right, succ.key)
		n.setRight(child)
	}
	if !removed {
		return n, false
	}

	refreshHeight(n)
	return t.rebalanceDelete(n), true
}

// After a removal the key no longer tells the shape, the balance of
// the taller child does. A child balanced at 0 is handled as LL or RR,
// a single rotation is enough for it.
func (t *avlTree[K]) rebalanceDelete(n *node[K]) *node[K] {
	balance := n.Balance()
	switch {
	case /* LL */ balance > 1 && n.left.Balance() >= 0:
		t.rebalanced("LL", n.key)
		return t.rightRotate(n, refreshHeight[K])
	case /* LR */ balance > 1:
		t.rebalanced("LR", n.key)
		t.leftRotate(n.left, refreshHeight[K])
		return t.rightRotate(n, refreshHeight[K])
	case /* RR */ balance < -1 && n.right.Balance() <= 0:
		t.rebalanced("RR", n.key)
		return t.leftRotate(n, refreshHeight[K])
	case /* RL */ balance < -1:
		t.rebalanced("RL", n.key)
		t.rightRotate(n.right, refreshHeight[K])
		return t.leftRotate(n, refreshHeight[K])
	default:
	}
	return n
}

// IsBalanced recomputes every height instead of trusting the cached ones.
func (t *avlTree[K]) IsBalanced() bool {
	_, ok := checkBalance(t.root, true)
	return ok
}

// checkBalance compares the cached heights too when cached is set.
func checkBalance[K infra.OrderedKey](n *node[K], cached bool) (int, bool) {
	if n.isNilLeaf() {
		return 0, true
	}
	lh, lok := checkBalance(n.left, cached)
	if !lok {
		return 0, false
	}
	rh, rok := checkBalance(n.right, cached)
	if !rok {
		return 0, false
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, false
	}
	h := 1 + max(lh, rh)
	return h, !cached || h == n.height
}
