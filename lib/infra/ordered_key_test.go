package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedKeyComparator(t *testing.T) {
	testcases := []struct {
		name string
		cmp  OrderedKeyComparator[int]
		i, j int
		exp  int64
	}{
		{"asc less", AscOrderedKeyComparator[int], 1, 2, -1},
		{"asc equal", AscOrderedKeyComparator[int], 2, 2, 0},
		{"asc greater", AscOrderedKeyComparator[int], 3, 2, 1},
		{"negative", AscOrderedKeyComparator[int], -7, -3, -1},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.exp, tc.cmp(tc.i, tc.j))
		})
	}
}

func TestOrderedKeyComparator_String(t *testing.T) {
	require.Equal(t, int64(-1), AscOrderedKeyComparator("abc", "abd"))
	require.Equal(t, int64(1), AscOrderedKeyComparator("b", "abc"))
	require.Equal(t, int64(0), AscOrderedKeyComparator("", ""))
}
