package tree

import (
	"iter"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

// treeBase carries the state and the read paths shared by the
// pointer-linked trees. leaf is nil except for the Red-Black tree,
// which marks every absent child with its own sentinel.
type treeBase[K infra.OrderedKey] struct {
	root     *node[K]
	leaf     *node[K]
	count    int64
	variant  Variant
	logger   *zap.Logger
	recorder EventRecorder
}

func newTreeBase[K infra.OrderedKey](variant Variant, leaf *node[K], opts ...TreeOption) treeBase[K] {
	o := applyTreeOptions(variant, opts...)
	return treeBase[K]{
		root:     leaf,
		leaf:     leaf,
		variant:  variant,
		logger:   o.logger,
		recorder: o.recorder,
	}
}

func (t *treeBase[K]) Len() int64 {
	return t.count
}

func (t *treeBase[K]) Height() int {
	return measureHeight(t.root)
}

func (t *treeBase[K]) Release() {
	t.root = t.leaf
	t.count = 0
}

// descend walks down from the root as next directs, Root stops it.
// Nothing is splayed or rebalanced on the way.
func (t *treeBase[K]) descend(next func(key K) Direction) {
	for aux := t.root; !aux.isNilLeaf(); {
		switch next(aux.key) {
		case Left:
			aux = aux.left
		case Right:
			aux = aux.right
		default:
			return
		}
	}
}

func (t *treeBase[K]) lookup(key K) *node[K] {
	aux := t.root
	for !aux.isNilLeaf() {
		if key == aux.key {
			return aux
		} else if key < aux.key {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return nil
}

func (t *treeBase[K]) Search(key K) bool {
	return t.lookup(key) != nil
}

func (t *treeBase[K]) Min() (K, bool) {
	if t.root.isNilLeaf() {
		var zero K
		return zero, false
	}
	return t.root.minimum().key, true
}

func (t *treeBase[K]) Max() (K, bool) {
	if t.root.isNilLeaf() {
		var zero K
		return zero, false
	}
	return t.root.maximum().key, true
}

// All walks by successor links and needs no extra space.
func (t *treeBase[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.root.isNilLeaf() {
			return
		}
		for aux := t.root.minimum(); aux != nil; aux = aux.succ() {
			if !yield(aux.key) {
				return
			}
		}
	}
}

func (t *treeBase[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.root.isNilLeaf() {
			return
		}
		for aux := t.root.maximum(); aux != nil; aux = aux.pred() {
			if !yield(aux.key) {
				return
			}
		}
	}
}

func (t *treeBase[K]) Foreach(action func(idx int64, key K) bool) {
	var idx int64
	for key := range t.All() {
		if !action(idx, key) {
			return
		}
		idx++
	}
}

func (t *treeBase[K]) PreOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.root.isNilLeaf() {
			return
		}
		stack := []*node[K]{t.root}
		for len(stack) > 0 {
			aux := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(aux.key) {
				return
			}
			if !aux.right.isNilLeaf() {
				stack = append(stack, aux.right)
			}
			if !aux.left.isNilLeaf() {
				stack = append(stack, aux.left)
			}
		}
	}
}

func (t *treeBase[K]) PostOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.root.isNilLeaf() {
			return
		}
		var prev *node[K]
		stack := make([]*node[K], 0, 16)
		aux := t.root
		for len(stack) > 0 || !aux.isNilLeaf() {
			if !aux.isNilLeaf() {
				stack = append(stack, aux)
				aux = aux.left
				continue
			}
			top := stack[len(stack)-1]
			if !top.right.isNilLeaf() && top.right != prev {
				aux = top.right
				continue
			}
			stack = stack[:len(stack)-1]
			if !yield(top.key) {
				return
			}
			prev = top
		}
	}
}

func (t *treeBase[K]) LevelOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		if t.root.isNilLeaf() {
			return
		}
		queue := []*node[K]{t.root}
		for len(queue) > 0 {
			aux := queue[0]
			queue = queue[1:]
			if !yield(aux.key) {
				return
			}
			if !aux.left.isNilLeaf() {
				queue = append(queue, aux.left)
			}
			if !aux.right.isNilLeaf() {
				queue = append(queue, aux.right)
			}
		}
	}
}

func (t *treeBase[K]) LeafCount() int {
	if t.root.isNilLeaf() {
		return 0
	}
	leaves := 0
	for aux := t.root.minimum(); aux != nil; aux = aux.succ() {
		if aux.isLeaf() {
			leaves++
		}
	}
	return leaves
}

func (t *treeBase[K]) leftRotate(x *node[K], refresh func(*node[K])) *node[K] {
	y := rotateLeft(&t.root, x, refresh)
	t.debug("rotate", zap.Stringer("dir", Left), zap.Any("lifted", y.key))
	t.recorder.Rotated(t.variant, Left)
	return y
}

func (t *treeBase[K]) rightRotate(x *node[K], refresh func(*node[K])) *node[K] {
	y := rotateRight(&t.root, x, refresh)
	t.debug("rotate", zap.Stringer("dir", Right), zap.Any("lifted", y.key))
	t.recorder.Rotated(t.variant, Right)
	return y
}

func (t *treeBase[K]) rebalanced(scenario string, key K) {
	t.debug("rebalance", zap.String("scenario", scenario), zap.Any("key", key))
	t.recorder.Rebalanced(t.variant, scenario)
}

func (t *treeBase[K]) debug(msg string, fields ...zap.Field) {
	if ce := t.logger.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}
