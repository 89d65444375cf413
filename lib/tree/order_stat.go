package tree

import (
	"slices"

	"github.com/benz9527/xtree/lib/infra"
)

// Order statistics over the in-order walk, O(k) for the k-th key.

// Keys collects the keys in ascending order.
func Keys[K infra.OrderedKey](tree BST[K]) []K {
	keys := make([]K, 0, tree.Len())
	return slices.AppendSeq(keys, tree.All())
}

// KthSmallest is 1-based, KthSmallest(tree, 1) equals Min.
func KthSmallest[K infra.OrderedKey](tree BST[K], k int64) (K, bool) {
	var zero K
	if k <= 0 || k > tree.Len() {
		return zero, false
	}
	var idx int64
	for key := range tree.All() {
		if idx++; idx == k {
			return key, true
		}
	}
	return zero, false
}

func KthLargest[K infra.OrderedKey](tree BST[K], k int64) (K, bool) {
	var zero K
	if k <= 0 || k > tree.Len() {
		return zero, false
	}
	var idx int64
	for key := range tree.Backward() {
		if idx++; idx == k {
			return key, true
		}
	}
	return zero, false
}

// RangeKeys returns the keys in [from, to] in ascending order.
func RangeKeys[K infra.OrderedKey](tree BST[K], from, to K) []K {
	if to < from {
		return nil
	}
	keys := make([]K, 0, 8)
	for key := range tree.All() {
		if key > to {
			break
		}
		if key >= from {
			keys = append(keys, key)
		}
	}
	return keys
}

// InternalCount is the number of nodes with at least one child.
func InternalCount[K infra.OrderedKey](tree BST[K]) int64 {
	return tree.Len() - int64(tree.LeafCount())
}

// RangeSum adds up the keys in [from, to].
func RangeSum[K infra.Number](tree BST[K], from, to K) K {
	var sum K
	for _, key := range RangeKeys[K](tree, from, to) {
		sum += key
	}
	return sum
}

// descender is implemented by the trees that can be walked from the
// root by key comparisons.
type descender[K infra.OrderedKey] interface {
	descend(next func(key K) Direction)
}

// CommonAncestor returns the key of the lowest node whose subtree
// spans both a and b, the keys themselves need not be present.
// It is false for an empty tree or a tree that cannot be walked.
func CommonAncestor[K infra.OrderedKey](tree BST[K], a, b K) (K, bool) {
	var (
		ancestor K
		found    bool
	)
	d, ok := tree.(descender[K])
	if !ok {
		return ancestor, false
	}
	d.descend(func(key K) Direction {
		if a < key && b < key {
			return Left
		} else if a > key && b > key {
			return Right
		}
		ancestor, found = key, true
		return Root
	})
	return ancestor, found
}

// ClosestKey returns the key with the least distance to target, the
// one nearer to the root wins a tie.
func ClosestKey[K infra.Number](tree BST[K], target K) (K, bool) {
	var (
		closest K
		found   bool
	)
	visit := func(key K) {
		if !found || distance(key, target) < distance(closest, target) {
			closest, found = key, true
		}
	}
	d, ok := tree.(descender[K])
	if !ok {
		for key := range tree.All() {
			visit(key)
		}
		return closest, found
	}
	d.descend(func(key K) Direction {
		visit(key)
		if target < key {
			return Left
		} else if target > key {
			return Right
		}
		return Root
	})
	return closest, found
}

// distance keeps unsigned keys from wrapping around.
func distance[K infra.Number](a, b K) K {
	if a > b {
		return a - b
	}
	return b - a
}

// Merge inserts the keys of every src into dst and returns dst.
// The sources are left untouched.
func Merge[K infra.OrderedKey](dst BST[K], srcs ...BST[K]) BST[K] {
	for _, src := range srcs {
		if src == nil || src == dst {
			continue
		}
		// Collected first, dst may wrap the nodes of src.
		for _, key := range Keys[K](src) {
			dst.Insert(key)
		}
	}
	return dst
}

// Split inserts the keys of tree below pivot into less and the ones
// above it into greater, pivot itself goes to neither.
func Split[K infra.OrderedKey](tree BST[K], pivot K, less, greater BST[K]) {
	for _, key := range Keys[K](tree) {
		if key < pivot {
			less.Insert(key)
		} else if key > pivot {
			greater.Insert(key)
		}
	}
}
