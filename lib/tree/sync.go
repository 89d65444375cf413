package tree

import (
	"iter"
	"slices"
	"sync"

	"github.com/benz9527/xtree/lib/infra"
)

// syncTree serializes every call, reads included, because a splay
// tree restructures itself on Search, Min and Max.
type syncTree[K infra.OrderedKey] struct {
	lock sync.Mutex
	tree BST[K]
}

func NewSynchronized[K infra.OrderedKey](tree BST[K]) BST[K] {
	if tree == nil {
		panic(infra.NewViolation("[tree] synchronized wrapper over a nil tree"))
	}
	return &syncTree[K]{tree: tree}
}

func (t *syncTree[K]) Len() int64 {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Len()
}

func (t *syncTree[K]) Height() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Height()
}

func (t *syncTree[K]) Insert(key K) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.tree.Insert(key)
}

func (t *syncTree[K]) Delete(key K) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Delete(key)
}

func (t *syncTree[K]) Search(key K) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Search(key)
}

func (t *syncTree[K]) Min() (K, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Min()
}

func (t *syncTree[K]) Max() (K, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.Max()
}

func (t *syncTree[K]) LeafCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.tree.LeafCount()
}

func (t *syncTree[K]) Release() {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.tree.Release()
}

func (t *syncTree[K]) descend(next func(key K) Direction) {
	if d, ok := t.tree.(descender[K]); ok {
		t.lock.Lock()
		defer t.lock.Unlock()
		d.descend(next)
	}
}

// validate holds the lock while the checks of the wrapped variant run.
func (t *syncTree[K]) validate() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	return Validate[K](t.tree)
}

func (t *syncTree[K]) snapshot(seq func() iter.Seq[K]) []K {
	t.lock.Lock()
	defer t.lock.Unlock()
	return slices.Collect(seq())
}

// All yields a snapshot taken when the range starts, so the loop body
// may call back into the tree.
func (t *syncTree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, key := range t.snapshot(t.tree.All) {
			if !yield(key) {
				return
			}
		}
	}
}

func (t *syncTree[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, key := range t.snapshot(t.tree.Backward) {
			if !yield(key) {
				return
			}
		}
	}
}

func (t *syncTree[K]) Foreach(action func(idx int64, key K) bool) {
	for idx, key := range t.snapshot(t.tree.All) {
		if !action(int64(idx), key) {
			return
		}
	}
}
