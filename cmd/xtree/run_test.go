package main

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/tree"
)

func runApp(t *testing.T, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := newApp(out, errOut)
	err := app.Run(append([]string{"xtree"}, args...))
	return out, errOut, err
}

func decodeReport(t *testing.T, out *bytes.Buffer) report {
	t.Helper()
	r := report{}
	require.NoError(t, json.NewDecoder(bytes.NewReader(out.Bytes())).Decode(&r))
	return r
}

func TestRun_Variants(t *testing.T) {
	for _, variant := range variantNames() {
		t.Run(variant, func(tt *testing.T) {
			out, _, err := runApp(tt, "run",
				"--variant", variant,
				"--keys", "5,3,8,1,4,7,9,2,6,3",
				"--delete-ratio", "0.5",
			)
			require.NoError(tt, err)
			r := decodeReport(tt, out)
			require.Equal(tt, variant, r.Variant)
			require.Equal(tt, 9, r.Inserted)
			require.Equal(tt, 4, r.Deleted)
			require.Equal(tt, int64(5), r.Len)
			require.Len(tt, r.Keys, 5)
			require.True(tt, slices.IsSorted(r.Keys))
			require.NotNil(tt, r.Min)
			require.Equal(tt, r.Keys[0], *r.Min)
			require.NotNil(tt, r.Max)
			require.Equal(tt, r.Keys[4], *r.Max)
		})
	}
}

func TestRun_RandomKeys(t *testing.T) {
	out, _, err := runApp(t, "run", "-v", "avl", "-r", "500", "-s", "7")
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.Equal(t, int64(500), r.Len)
	require.NotNil(t, r.Balanced)
	require.True(t, *r.Balanced)
	require.LessOrEqual(t, r.Height, 12)

	out, _, err = runApp(t, "run", "-v", "rb", "-r", "500", "-s", "7", "-d", "1", "--sync")
	require.NoError(t, err)
	r = decodeReport(t, out)
	require.Equal(t, int64(0), r.Len)
	require.Equal(t, 500, r.Deleted)
	require.Nil(t, r.Min)
	require.NotNil(t, r.BlackHeight)
	require.Equal(t, 0, *r.BlackHeight)
}

func TestRun_SyncKeepsVariantChecks(t *testing.T) {
	out, _, err := runApp(t, "run", "-v", "avl", "-r", "100", "-d", "0.3", "--sync")
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.NotNil(t, r.Balanced)
	require.True(t, *r.Balanced)
	require.Nil(t, r.BlackHeight)

	out, _, err = runApp(t, "run", "-v", "rb", "-r", "100", "-d", "0.3", "--sync")
	require.NoError(t, err)
	r = decodeReport(t, out)
	require.NotNil(t, r.BlackHeight)
	require.Positive(t, *r.BlackHeight)
	require.Nil(t, r.Balanced)

	out, _, err = runApp(t, "run", "-v", "bst", "-k", "1,2,3", "--sync")
	require.NoError(t, err)
	r = decodeReport(t, out)
	require.NotNil(t, r.Balanced)
	require.False(t, *r.Balanced)
}

// unorderedTree yields its keys backwards, so the order check fails as
// soon as it holds two keys.
type unorderedTree struct {
	tree.BST[int]
}

func (u unorderedTree) All() iter.Seq[int] {
	return u.BST.Backward()
}

func TestRun_ViolationStillFlushesMetrics(t *testing.T) {
	variants["unordered"] = func(opts ...tree.TreeOption) tree.BST[int] {
		return unorderedTree{BST: tree.NewBST[int](opts...)}
	}
	t.Cleanup(func() { delete(variants, "unordered") })

	out, errOut, err := runApp(t, "run", "-v", "unordered", "-k", "1,2,3", "-m", "prometheus")
	require.Error(t, err)
	require.ErrorIs(t, err, tree.ErrOrderViolation)
	require.Contains(t, err.Error(), "insert 2")
	require.Contains(t, errOut.String(), "tree invariant broken")
	// The meter provider is shut down and the registry dumped on the way out.
	require.Contains(t, out.String(), "target_info")
}

func TestRun_VariantFromEnv(t *testing.T) {
	t.Setenv("XTREE_VARIANT", "Splay")
	out, _, err := runApp(t, "run", "-k", "1,2,3")
	require.NoError(t, err)
	require.Equal(t, "splay", decodeReport(t, out).Variant)
}

func TestRun_Logging(t *testing.T) {
	_, errOut, err := runApp(t, "run", "-v", "avl", "-k", "1,2,3", "-l", "debug", "-f", "text")
	require.NoError(t, err)
	require.Contains(t, errOut.String(), "rotate")
	require.Contains(t, errOut.String(), "tree run finished")

	_, errOut, err = runApp(t, "run", "-v", "avl", "-k", "1,2,3", "-l", "warn")
	require.NoError(t, err)
	require.Empty(t, errOut.String())
}

func TestRun_PrometheusMetrics(t *testing.T) {
	out, _, err := runApp(t, "run", "-v", "rb", "-r", "64", "-m", "prometheus")
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.NotNil(t, r.BlackHeight)
	require.Contains(t, out.String(), "xtree_rotations_total")
	require.Contains(t, out.String(), `variant="RedBlack"`)
}

func TestRun_ConsoleMetrics(t *testing.T) {
	out, _, err := runApp(t, "run", "-v", "splay", "-r", "32", "-m", "console")
	require.NoError(t, err)
	require.Contains(t, out.String(), "xtree.splay.depth")
}

func TestRun_Errors(t *testing.T) {
	testcases := []struct {
		name string
		args []string
		err  string
	}{
		{name: "unknown variant", args: []string{"-v", "btree", "-k", "1"}, err: "unknown variant"},
		{name: "no keys", args: []string{}, err: "either keys or random is required"},
		{name: "exclusive keys", args: []string{"-k", "1", "-r", "3"}, err: "exclusive"},
		{name: "negative random", args: []string{"-r", "-3"}, err: "negative random count"},
		{name: "invalid key", args: []string{"-k", "1,x"}, err: `invalid key "x"`},
		{name: "ratio", args: []string{"-k", "1", "-d", "1.5"}, err: "out of [0, 1]"},
		{name: "metrics", args: []string{"-k", "1", "-m", "statsd"}, err: "unknown metrics exporter"},
		{name: "log format", args: []string{"-k", "1", "-f", "yaml"}, err: "unknown log encoder"},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			_, _, err := runApp(tt, append([]string{"run"}, tc.args...)...)
			require.Error(tt, err)
			require.Contains(tt, err.Error(), tc.err)
		})
	}
}

func TestVariantsCommand(t *testing.T) {
	out, _, err := runApp(t, "variants")
	require.NoError(t, err)
	require.Equal(t, "avl\nbst\nrb\nsplay\nthreaded", strings.TrimSpace(out.String()))
}
