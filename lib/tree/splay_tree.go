package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://en.wikipedia.org/wiki/Splay_tree
// Self-adjusting, no balance field is stored. Every access moves the
// accessed node to the root, the amortized cost of an access is O(log n).

type splayTree[K infra.OrderedKey] struct {
	treeBase[K]
}

func NewSplayTree[K infra.OrderedKey](opts ...TreeOption) SplayTree[K] {
	return &splayTree[K]{
		treeBase: newTreeBase[K](Splay, nil, opts...),
	}
}

func (t *splayTree[K]) Root() BSTNode[K] {
	if t.root.isNilLeaf() {
		return nil
	}
	return t.root
}

/*
zig: P is the root.

	    P             X
	   /             / \
	  X      ==>    A   P
	 / \               /
	A   B             B

zig-zig: X and P are on the same side. Rotate G first, then P.

	      G          X
	     /            \
	    P      ==>     P
	   /                \
	  X                  G

zig-zag: X and P are on opposite sides. Rotate P, then G.

	    G             X
	   /             / \
	  P      ==>    P   G
	   \
	    X
*/
func (t *splayTree[K]) splay(x *node[K]) {
	if x.isNilLeaf() {
		return
	}

	depth := 0
	for !x.parent.isNilLeaf() {
		p := x.parent
		g := p.parent
		switch {
		case /* zig */ g.isNilLeaf():
			if x == p.left {
				t.rightRotate(p, nil)
			} else {
				t.leftRotate(p, nil)
			}
			depth++
		case /* zig-zig */ x == p.left && p == g.left:
			t.rightRotate(g, nil)
			t.rightRotate(p, nil)
			depth += 2
		case /* zig-zig */ x == p.right && p == g.right:
			t.leftRotate(g, nil)
			t.leftRotate(p, nil)
			depth += 2
		case /* zig-zag */ x == p.right && p == g.left:
			t.leftRotate(p, nil)
			t.rightRotate(g, nil)
			depth += 2
		default: // zig-zag
			t.rightRotate(p, nil)
			t.leftRotate(g, nil)
			depth += 2
		}
	}
	t.debug("splay", zap.Any("key", x.key), zap.Int("depth", depth))
	t.recorder.Splayed(depth)
}

func (t *splayTree[K]) Insert(key K) {
	var p *node[K]
	for x := t.root; !x.isNilLeaf(); {
		p = x
		if /* duplicate */ key == x.key {
			t.splay(x)
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
	t.splay(z)
}

// Search splays the last visited node on a miss.
func (t *splayTree[K]) Search(key K) bool {
	var last *node[K]
	for x := t.root; !x.isNilLeaf(); {
		last = x
		if key == x.key {
			t.splay(x)
			return true
		} else if key < x.key {
			x = x.left
		} else {
			x = x.right
		}
	}
	t.splay(last)
	return false
}

/*
The target Z is splayed to the root and removed, leaving the subtrees
L and R. The maximum of L is splayed to the top of L, it has no right
child afterward and adopts R.

	      Z              M
	     / \            / \
	    L   R   ==>    L'  R
*/
func (t *splayTree[K]) Delete(key K) bool {
	z := t.lookup(key)
	if z == nil {
		return false
	}

	t.splay(z)
	l, r := z.left, z.right
	switch {
	case l.isNilLeaf():
		t.root = r
		if !r.isNilLeaf() {
			r.parent = nil
		}
	case r.isNilLeaf():
		t.root = l
		l.parent = nil
	default:
		l.parent = nil
		t.root = l
		m := l.maximum()
		t.splay(m)
		infra.Assert(m.right.isNilLeaf(), "[splay] maximum of the left subtree has a right child")
		m.setRight(r)
	}
	z.parent, z.left, z.right = nil, nil, nil
	t.count--
	return true
}

func (t *splayTree[K]) Min() (K, bool) {
	if t.root.isNilLeaf() {
		var zero K
		return zero, false
	}
	m := t.root.minimum()
	t.splay(m)
	return m.key, true
}

func (t *splayTree[K]) Max() (K, bool) {
	if t.root.isNilLeaf() {
		var zero K
		return zero, false
	}
	m := t.root.maximum()
	t.splay(m)
	return m.key, true
}
