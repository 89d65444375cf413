package tree

import (
	"iter"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://en.wikipedia.org/wiki/Threaded_binary_tree
// https://www.geeksforgeeks.org/threaded-binary-tree-deletion/
// An absent child link is reused as a thread to the in-order
// predecessor (left) or successor (right). The header node closes both
// ends, the leftmost node threads back to it on the left and the
// rightmost one on the right.

type threadedNode[K infra.OrderedKey] struct {
	left    *threadedNode[K]
	right   *threadedNode[K]
	key     K
	lThread bool
	rThread bool
}

func (n *threadedNode[K]) succ() *threadedNode[K] {
	if n.rThread {
		return n.right
	}
	aux := n.right
	for !aux.lThread {
		aux = aux.left
	}
	return aux
}

func (n *threadedNode[K]) pred() *threadedNode[K] {
	if n.lThread {
		return n.left
	}
	aux := n.left
	for !aux.rThread {
		aux = aux.right
	}
	return aux
}

type threadedTree[K infra.OrderedKey] struct {
	header *threadedNode[K]
	count  int64
	logger *zap.Logger
}

func NewThreadedBST[K infra.OrderedKey](opts ...TreeOption) ThreadedTree[K] {
	o := applyTreeOptions(Threaded, opts...)
	t := &threadedTree[K]{
		header: &threadedNode[K]{},
		logger: o.logger,
	}
	t.Release()
	return t
}

// The header threads to itself on the left while the tree is empty.
// Otherwise header.left is the root.
func (t *threadedTree[K]) root() *threadedNode[K] {
	if t.header.lThread {
		return nil
	}
	return t.header.left
}

func (t *threadedTree[K]) descend(next func(key K) Direction) {
	for aux := t.root(); aux != nil; {
		switch next(aux.key) {
		case Left:
			if aux.lThread {
				return
			}
			aux = aux.left
		case Right:
			if aux.rThread {
				return
			}
			aux = aux.right
		default:
			return
		}
	}
}

func (t *threadedTree[K]) Len() int64 {
	return t.count
}

func (t *threadedTree[K]) Release() {
	h := t.header
	h.left, h.lThread = h, true
	h.right, h.rThread = h, false
	t.count = 0
}

func (t *threadedTree[K]) Height() int {
	return threadedHeight(t.root())
}

func threadedHeight[K infra.OrderedKey](n *threadedNode[K]) int {
	if n == nil {
		return 0
	}
	lh, rh := 0, 0
	if !n.lThread {
		lh = threadedHeight(n.left)
	}
	if !n.rThread {
		rh = threadedHeight(n.right)
	}
	return 1 + max(lh, rh)
}

func (t *threadedTree[K]) Insert(key K) {
	cur := t.root()
	if cur == nil {
		n := &threadedNode[K]{
			left:    t.header,
			right:   t.header,
			key:     key,
			lThread: true,
			rThread: true,
		}
		t.header.left, t.header.lThread = n, false
		t.count++
		return
	}

	for {
		if /* duplicate */ key == cur.key {
			return
		}
		if key < cur.key {
			if !cur.lThread {
				cur = cur.left
				continue
			}
			// The new left child inherits the predecessor thread of cur.
			n := &threadedNode[K]{
				left:    cur.left,
				right:   cur,
				key:     key,
				lThread: true,
				rThread: true,
			}
			cur.left, cur.lThread = n, false
			break
		}
		if !cur.rThread {
			cur = cur.right
			continue
		}
		n := &threadedNode[K]{
			left:    cur,
			right:   cur.right,
			key:     key,
			lThread: true,
			rThread: true,
		}
		cur.right, cur.rThread = n, false
		break
	}
	t.count++
}

// find returns the node of key and its parent, the header for the root.
func (t *threadedTree[K]) find(key K) (cur, par *threadedNode[K]) {
	par, cur = t.header, t.root()
	for cur != nil {
		if key == cur.key {
			return cur, par
		}
		par = cur
		if key < cur.key {
			if cur.lThread {
				return nil, nil
			}
			cur = cur.left
		} else {
			if cur.rThread {
				return nil, nil
			}
			cur = cur.right
		}
	}
	return nil, nil
}

func (t *threadedTree[K]) Search(key K) bool {
	cur, _ := t.find(key)
	return cur != nil
}

func (t *threadedTree[K]) Delete(key K) bool {
	cur, par := t.find(key)
	if cur == nil {
		return false
	}

	switch {
	case /* two children */ !cur.lThread && !cur.rThread:
		t.removeWithTwoChildren(par, cur)
	case /* one child */ !cur.lThread || !cur.rThread:
		t.removeWithOneChild(par, cur)
	default: // leaf
		t.removeLeaf(par, cur)
	}
	t.count--
	return true
}

// removeLeaf turns the link of par into the thread cur has been holding
// on the same side. For the root the header gets its self thread back.
func (t *threadedTree[K]) removeLeaf(par, cur *threadedNode[K]) {
	t.logger.Debug("remove leaf", zap.Any("key", cur.key))
	if cur == par.left {
		par.left, par.lThread = cur.left, true
	} else {
		par.right, par.rThread = cur.right, true
	}
}

func (t *threadedTree[K]) removeWithOneChild(par, cur *threadedNode[K]) {
	t.logger.Debug("remove node with one child", zap.Any("key", cur.key))
	s, p := cur.succ(), cur.pred()

	var child *threadedNode[K]
	if !cur.lThread {
		child = cur.left
	} else {
		child = cur.right
	}
	if cur == par.left {
		par.left = child
	} else {
		par.right = child
	}

	// Only the thread that pointed at cur has to move.
	if !cur.lThread {
		p.right = s
	} else {
		s.left = p
	}
}

// removeWithTwoChildren copies the successor key into cur and removes the
// successor, which is the leftmost node of cur.right and has no left child.
func (t *threadedTree[K]) removeWithTwoChildren(par, cur *threadedNode[K]) {
	t.logger.Debug("remove node with two children", zap.Any("key", cur.key))
	ps, s := cur, cur.right
	for !s.lThread {
		ps, s = s, s.left
	}
	cur.key = s.key
	if s.rThread {
		t.removeLeaf(ps, s)
	} else {
		t.removeWithOneChild(ps, s)
	}
}

func (t *threadedTree[K]) leftmost() *threadedNode[K] {
	aux := t.root()
	if aux == nil {
		return nil
	}
	for !aux.lThread {
		aux = aux.left
	}
	return aux
}

func (t *threadedTree[K]) rightmost() *threadedNode[K] {
	aux := t.root()
	if aux == nil {
		return nil
	}
	for !aux.rThread {
		aux = aux.right
	}
	return aux
}

func (t *threadedTree[K]) Min() (K, bool) {
	if n := t.leftmost(); n != nil {
		return n.key, true
	}
	var zero K
	return zero, false
}

func (t *threadedTree[K]) Max() (K, bool) {
	if n := t.rightmost(); n != nil {
		return n.key, true
	}
	var zero K
	return zero, false
}

// All follows the right threads, no stack and no parent link is needed.
func (t *threadedTree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		n := t.leftmost()
		if n == nil {
			return
		}
		for ; n != t.header; n = n.succ() {
			if !yield(n.key) {
				return
			}
		}
	}
}

func (t *threadedTree[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		n := t.rightmost()
		if n == nil {
			return
		}
		for ; n != t.header; n = n.pred() {
			if !yield(n.key) {
				return
			}
		}
	}
}

func (t *threadedTree[K]) Foreach(action func(idx int64, key K) bool) {
	var idx int64
	for key := range t.All() {
		if !action(idx, key) {
			return
		}
		idx++
	}
}

func (t *threadedTree[K]) LeafCount() int {
	leaves := 0
	n := t.leftmost()
	if n == nil {
		return 0
	}
	for ; n != t.header; n = n.succ() {
		if n.lThread && n.rThread {
			leaves++
		}
	}
	return leaves
}
