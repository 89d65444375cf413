package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// The longest path is at most twice the shortest one.

// rbTree marks every absent child and the parent of the root with its
// own black sentinel. The sentinel is never written, the delete fixup
// carries the parent of x aside instead of storing it into the sentinel.
type rbTree[K infra.OrderedKey] struct {
	treeBase[K]
}

func NewRBTree[K infra.OrderedKey](opts ...TreeOption) RBTree[K] {
	sentinel := &node[K]{color: Black}
	return &rbTree[K]{
		treeBase: newTreeBase[K](RedBlack, sentinel, opts...),
	}
}

func (t *rbTree[K]) Root() RBNode[K] {
	if t.root.isNilLeaf() {
		return nil
	}
	return t.root
}

// BlackHeight counts the black nodes from the root down to the leftmost
// nil leaf. The root is counted and the nil leaf is not.
func (t *rbTree[K]) BlackHeight() int {
	bh := 0
	for aux := t.root; !aux.isNilLeaf(); aux = aux.left {
		if aux.isBlack() {
			bh++
		}
	}
	return bh
}

func (t *rbTree[K]) Insert(key K) {
	x, y := t.root, t.leaf
	for !x.isNilLeaf() {
		y = x
		if /* duplicate */ key == x.key {
			return
		} else if key < x.key {
			x = x.left
		} else {
			x = x.right
		}
	}

	z := newNode[K](key, t.leaf)
	z.color = Red
	z.parent = y
	if y.isNilLeaf() {
		t.root = z
	} else if key < y.key {
		y.left = z
	} else {
		y.right = z
	}
	t.count++
	t.insertFixup(z)
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: The parent P is black, nothing to fix.

im2: Both the parent P and the uncle U are red, grandpa G is black.
Repaint and continue from G, which may be red-violated again.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black and X is the inner
grandchild. Rotate P to make X the outer one, then fall into im4.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4: X is the outer grandchild. Rotate G and repaint.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (t *rbTree[K]) insertFixup(x *node[K]) {
	for /* im1 */ x.parent.isRed() {
		p := x.parent
		g := p.parent
		infra.Assert(!g.isNilLeaf(), "[rbtree] red parent without grandpa")

		if p == g.left {
			u := g.right
			if /* im2 */ u.isRed() {
				p.color, u.color, g.color = Black, Black, Red
				t.rebalanced("insert:recolor", x.key)
				x = g
				continue
			}
			if /* im3 */ x == p.right {
				t.rebalanced("insert:inner", x.key)
				x = p
				t.leftRotate(x, nil)
			}
			/* im4 */
			t.rebalanced("insert:outer", x.key)
			x.parent.color = Black
			x.parent.parent.color = Red
			t.rightRotate(x.parent.parent, nil)
		} else {
			u := g.left
			if /* im2 */ u.isRed() {
				p.color, u.color, g.color = Black, Black, Red
				t.rebalanced("insert:recolor", x.key)
				x = g
				continue
			}
			if /* im3 */ x == p.left {
				t.rebalanced("insert:inner", x.key)
				x = p
				t.rightRotate(x, nil)
			}
			/* im4 */
			t.rebalanced("insert:outer", x.key)
			x.parent.color = Black
			x.parent.parent.color = Red
			t.leftRotate(x.parent.parent, nil)
		}
	}
	t.root.color = Black
}

// transplant puts v into the slot of u. v may be the sentinel.
func (t *rbTree[K]) transplant(u, v *node[K]) {
	if u.parent.isNilLeaf() {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	if !v.isNilLeaf() {
		v.parent = u.parent
	}
}

/*
r1: Z has at most one child, the child (or the sentinel) takes its slot.

r2: Z has two children. Its successor Y is the minimum of Z.right.
Y takes both the slot and the color of Z, so the color removed from
the tree is the original color of Y, and Y.right (X) moves up.

	  |                    |
	  Z                    Y
	 / \                  / \
	L  ..   move(Y, Z)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  Y  ..                X  ..
	   \
	    X

The fixup runs only if a black node has been taken away.
*/
func (t *rbTree[K]) Delete(key K) bool {
	z := t.lookup(key)
	if z == nil {
		return false
	}

	var x, xp *node[K]
	removedColor := z.color
	if /* r1 */ z.left.isNilLeaf() {
		x, xp = z.right, z.parent
		t.transplant(z, z.right)
	} else if /* r1 */ z.right.isNilLeaf() {
		x, xp = z.left, z.parent
		t.transplant(z, z.left)
	} else /* r2 */ {
		y := z.right.minimum()
		removedColor = y.color
		x = y.right
		if y.parent == z {
			xp = y
		} else {
			xp = y.parent
			t.transplant(y, y.right)
			y.setRight(z.right)
		}
		t.transplant(z, y)
		y.setLeft(z.left)
		y.color = z.color
	}
	z.parent, z.left, z.right = nil, nil, nil
	t.count--

	if removedColor == Black {
		t.deleteFixup(x, xp)
	}
	return true
}

/*
X carries an extra black. P is the parent of X, S is its sibling.

rm1: S is red. Rotate P and repaint, X gets a black sibling.

	    [P]                   [S]
	    / \    rotate(P)      / \
	  [X] <S>  ========>    <P> [Sd]
	      / \               / \
	    [Sc] [Sd]         [X] [Sc]

rm2: S is black and both nephews are black. Paint S red and move
the extra black up to P.

rm3: S is black, the near nephew Sc is red, the far one Sd is black.
Rotate S, Sc becomes the new sibling with a red far nephew.

rm4: S is black and the far nephew Sd is red. Rotate P, S takes the
color of P, P and Sd become black. The extra black is absorbed.

	    {P}                   {S}
	    / \    rotate(P)      / \
	  [X] [S]  ========>    [P] [Sd]
	      / \               / \
	    {Sc} <Sd>         [X] {Sc}
*/
func (t *rbTree[K]) deleteFixup(x, xp *node[K]) {
	for x != t.root && x.isBlack() {
		infra.Assert(!xp.isNilLeaf(), "[rbtree] extra black without parent")
		if x == xp.left {
			s := xp.right
			if /* rm1 */ s.isRed() {
				t.rebalanced("delete:red-sibling", xp.key)
				s.color, xp.color = Black, Red
				t.leftRotate(xp, nil)
				s = xp.right
			}
			infra.Assert(!s.isNilLeaf(), "[rbtree] extra black without sibling")
			if /* rm2 */ s.left.isBlack() && s.right.isBlack() {
				t.rebalanced("delete:black-nephews", xp.key)
				s.color = Red
				x, xp = xp, xp.parent
				continue
			}
			if /* rm3 */ s.right.isBlack() {
				t.rebalanced("delete:near-nephew", xp.key)
				s.left.color, s.color = Black, Red
				t.rightRotate(s, nil)
				s = xp.right
			}
			/* rm4 */
			t.rebalanced("delete:far-nephew", xp.key)
			s.color, xp.color = xp.color, Black
			s.right.color = Black
			t.leftRotate(xp, nil)
			x, xp = t.root, t.leaf
		} else {
			s := xp.left
			if /* rm1 */ s.isRed() {
				t.rebalanced("delete:red-sibling", xp.key)
				s.color, xp.color = Black, Red
				t.rightRotate(xp, nil)
				s = xp.left
			}
			infra.Assert(!s.isNilLeaf(), "[rbtree] extra black without sibling")
			if /* rm2 */ s.left.isBlack() && s.right.isBlack() {
				t.rebalanced("delete:black-nephews", xp.key)
				s.color = Red
				x, xp = xp, xp.parent
				continue
			}
			if /* rm3 */ s.left.isBlack() {
				t.rebalanced("delete:near-nephew", xp.key)
				s.right.color, s.color = Black, Red
				t.leftRotate(s, nil)
				s = xp.left
			}
			/* rm4 */
			t.rebalanced("delete:far-nephew", xp.key)
			s.color, xp.color = xp.color, Black
			s.left.color = Black
			t.rightRotate(xp, nil)
			x, xp = t.root, t.leaf
		}
	}
	if !x.isNilLeaf() {
		x.color = Black
	}
}
