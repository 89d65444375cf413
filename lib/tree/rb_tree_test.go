package tree

import (
	randv2 "math/rand/v2"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type colorKey struct {
	color RBColor
	key   int
}

func rbInOrder(tree RBTree[int]) []colorKey {
	res := make([]colorKey, 0, tree.Len())
	rt := tree.(*rbTree[int])
	if rt.root.isNilLeaf() {
		return res
	}
	for aux := rt.root.minimum(); aux != nil; aux = aux.succ() {
		res = append(res, colorKey{aux.color, aux.key})
	}
	return res
}

func TestRBTree_InsertFixup(t *testing.T) {
	tree := NewRBTree[int]()

	tree.Insert(52)
	require.Equal(t, []colorKey{{Black, 52}}, rbInOrder(tree))

	tree.Insert(47)
	require.Equal(t, []colorKey{{Red, 47}, {Black, 52}}, rbInOrder(tree))

	// outer
	tree.Insert(3)
	require.Equal(t, []colorKey{{Red, 3}, {Black, 47}, {Red, 52}}, rbInOrder(tree))

	// recolor
	tree.Insert(35)
	require.Equal(t, []colorKey{{Black, 3}, {Red, 35}, {Black, 47}, {Black, 52}}, rbInOrder(tree))

	// inner then outer
	tree.Insert(24)
	require.Equal(t, []colorKey{{Red, 3}, {Black, 24}, {Red, 35}, {Black, 47}, {Black, 52}}, rbInOrder(tree))
	require.NoError(t, RBTreeValidate[int](tree))
	require.Equal(t, 47, tree.Root().Key())
	require.Equal(t, 2, tree.BlackHeight())
}

func TestRBTree_Scenario(t *testing.T) {
	tree := NewRBTree[int]()
	for _, key := range []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45} {
		tree.Insert(key)
		require.NoError(t, RBTreeValidate[int](tree))
	}

	/*
		<X> is a RED node.
		[X] is a BLACK node (or NIL).

		              [50]
		            /      \
		         <30>       [70]
		        /    \      /  \
		     [20]    [40] <60> <80>
		     /  \    /  \
		   <10><25><35><45>
	*/
	require.Equal(t, []int{10, 20, 25, 30, 35, 40, 45, 50, 60, 70, 80}, slices.Collect(tree.All()))
	require.Equal(t, Black, tree.Root().Color())
	require.Equal(t, 50, tree.Root().Key())
	require.Equal(t, 2, tree.BlackHeight())
	require.Equal(t, 4, tree.Height())
	require.Equal(t, []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45}, slices.Collect(tree.LevelOrder()))
	require.Equal(t, Red, tree.Root().Left().(RBNode[int]).Color())
	require.Equal(t, 6, tree.LeafCount())

	// A red successor takes the place and the color of 20.
	require.True(t, tree.Delete(20))
	require.NoError(t, RBTreeValidate[int](tree))
	require.Equal(t, 2, tree.BlackHeight())

	for _, key := range []int{50, 70, 10, 25} {
		require.True(t, tree.Delete(key))
		require.False(t, tree.Search(key))
		require.NoError(t, RBTreeValidate[int](tree))
	}
	require.Equal(t, []int{30, 35, 40, 45, 60, 80}, slices.Collect(tree.All()))
}

func TestRBTree_DeleteFixupCases(t *testing.T) {
	recorder := &countingRecorder{}
	tree := NewRBTree[int](WithEventRecorder(recorder))
	keys := lo.Shuffle(lo.Range(512))
	for _, key := range keys {
		tree.Insert(key)
	}
	for _, key := range lo.Shuffle(keys) {
		require.True(t, tree.Delete(key))
		require.NoError(t, RBTreeValidate[int](tree))
	}
	require.Nil(t, tree.Root())
	require.Equal(t, 0, tree.BlackHeight())

	scenarios := lo.Uniq(lo.Map(recorder.rebalances, func(r recorded, _ int) string {
		return r.scenario
	}))
	for _, scenario := range []string{
		"insert:recolor", "insert:inner", "insert:outer",
		"delete:black-nephews", "delete:far-nephew",
	} {
		require.Contains(t, scenarios, scenario)
	}
	require.True(t, lo.EveryBy(recorder.rotations, func(r recorded) bool {
		return r.variant == RedBlack && r.dir != Root
	}))
}

func TestRBTree_SentinelUntouched(t *testing.T) {
	tree := NewRBTree[int]()
	rt := tree.(*rbTree[int])
	sentinel := rt.leaf
	rng := randv2.New(randv2.NewPCG(7, 11))
	for i := 0; i < 10_000; i++ {
		key := rng.IntN(1_000)
		if rng.IntN(2) == 0 {
			tree.Insert(key)
		} else {
			tree.Delete(key)
		}
		require.Nil(t, sentinel.parent)
		require.Nil(t, sentinel.left)
		require.Nil(t, sentinel.right)
		require.Equal(t, Black, sentinel.color)
		require.False(t, sentinel.hasKey)
	}
	require.NoError(t, RBTreeValidate[int](tree))
}

func TestRBTree_SequentialNumber(t *testing.T) {
	insertTotal := 100_000
	tree := NewRBTree[int]()

	rand := randv2.IntN(1_000)
	for i := 0; i < insertTotal; i++ {
		tree.Insert(i)
		if i%1000 == rand {
			require.NoError(t, RedViolationValidate[int](tree))
			require.NoError(t, BlackViolationValidate[int](tree))
		}
	}
	tree.Foreach(func(idx int64, key int) bool {
		require.Equal(t, int(idx), key)
		return true
	})
	// 2 * log2(n + 1)
	require.LessOrEqual(t, tree.Height(), 34)

	for i := insertTotal - 1; i >= insertTotal/2; i-- {
		require.True(t, tree.Delete(i))
	}
	require.NoError(t, RBTreeValidate[int](tree))
	maxKey, ok := tree.Max()
	require.True(t, ok)
	require.Equal(t, insertTotal/2-1, maxKey)

	tree.Release()
	require.Equal(t, int64(0), tree.Len())
	require.Nil(t, tree.Root())
}

func TestRBTree_Violations(t *testing.T) {
	newTree := func() *rbTree[int] {
		tree := NewRBTree[int]().(*rbTree[int])
		for _, key := range []int{20, 10, 30, 5} {
			tree.Insert(key)
		}
		return tree
	}

	tree := newTree()
	tree.root.color = Red
	err := RBTreeValidate[int](tree)
	require.ErrorIs(t, err, ErrRootColorViolation)
	// 10 is repainted black by the recolor of 5, the red root has no red child.
	require.NotErrorIs(t, err, ErrRedViolation)

	tree = newTree()
	tree.lookup(10).color = Red
	err = RBTreeValidate[int](tree)
	require.ErrorIs(t, err, ErrRedViolation)
	require.ErrorIs(t, err, ErrBlackViolation)

	tree = newTree()
	tree.lookup(5).color = Black
	require.ErrorIs(t, BlackViolationValidate[int](tree), ErrBlackViolation)
	require.NoError(t, RedViolationValidate[int](tree))
}
