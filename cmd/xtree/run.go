package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/lib/xlog"
	"github.com/benz9527/xtree/observability"
)

type treeCtor func(opts ...tree.TreeOption) tree.BST[int]

var variants = map[string]treeCtor{
	"avl":      func(opts ...tree.TreeOption) tree.BST[int] { return tree.NewAVLTree[int](opts...) },
	"rb":       func(opts ...tree.TreeOption) tree.BST[int] { return tree.NewRBTree[int](opts...) },
	"splay":    func(opts ...tree.TreeOption) tree.BST[int] { return tree.NewSplayTree[int](opts...) },
	"bst":      func(opts ...tree.TreeOption) tree.BST[int] { return tree.NewBST[int](opts...) },
	"threaded": func(opts ...tree.TreeOption) tree.BST[int] { return tree.NewThreadedBST[int](opts...) },
}

func variantNames() []string {
	names := lo.Keys(variants)
	slices.Sort(names)
	return names
}

type report struct {
	Variant     string `json:"variant"`
	Inserted    int    `json:"inserted"`
	Deleted     int    `json:"deleted"`
	Len         int64  `json:"len"`
	Height      int    `json:"height"`
	LeafCount   int    `json:"leafCount"`
	Min         *int   `json:"min,omitempty"`
	Max         *int   `json:"max,omitempty"`
	Balanced    *bool  `json:"balanced,omitempty"`
	BlackHeight *int   `json:"blackHeight,omitempty"`
	Keys        []int  `json:"keys"`
}

func runVariants(c *cli.Context) error {
	for _, name := range variantNames() {
		fmt.Fprintln(c.App.Writer, name)
	}
	return nil
}

func runTree(c *cli.Context) (err error) {
	variant := strings.ToLower(strings.TrimSpace(c.String("variant")))
	ctor, ok := variants[variant]
	if !ok {
		return fmt.Errorf("unknown variant %q, expected one of %s", variant, strings.Join(variantNames(), "|"))
	}

	seed := uint64(c.Int64("seed"))
	rng := rand.New(rand.NewPCG(seed, seed))
	keys, err := inputKeys(c.String("keys"), c.Int("random"), rng)
	if err != nil {
		return err
	}
	ratio := c.Float64("delete-ratio")
	if ratio < 0 || ratio > 1 {
		return fmt.Errorf("delete ratio %v out of [0, 1]", ratio)
	}

	enc, err := xlog.ParseEncoder(c.String("log-format"))
	if err != nil {
		return err
	}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriteSyncer(zapcore.AddSync(c.App.ErrWriter)),
		xlog.WithXLoggerLevel(xlog.LogLevel(c.String("log-level"))),
		xlog.WithXLoggerEncoder(enc),
	)
	defer func() { _ = logger.Sync() }()

	opts := []tree.TreeOption{tree.WithLogger(logger.Zap())}
	flush, recorder, err := setupMetrics(c.String("metrics"), c.App.Writer)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := flush(); err == nil {
			err = ferr
		}
	}()
	if recorder != nil {
		opts = append(opts, tree.WithEventRecorder(recorder))
	}

	// The variant checks of the report need the unwrapped tree.
	inner := ctor(opts...)
	t := inner
	if c.Bool("sync") {
		t = tree.NewSynchronized[int](inner)
	}

	start := time.Now()
	for _, key := range keys {
		t.Insert(key)
		if err = check(logger, t, "insert", key); err != nil {
			return err
		}
	}

	for _, key := range keys {
		if !t.Search(key) {
			return fmt.Errorf("inserted key %d not found", key)
		}
		// Splay searches restructure the tree.
		if err = check(logger, t, "search", key); err != nil {
			return err
		}
	}

	victims := slices.Clone(keys)
	rng.Shuffle(len(victims), func(i, j int) { victims[i], victims[j] = victims[j], victims[i] })
	victims = victims[:int(float64(len(victims))*ratio)]
	deleted := 0
	for _, key := range victims {
		if t.Delete(key) {
			deleted++
		}
		if err = check(logger, t, "delete", key); err != nil {
			return err
		}
	}
	logger.Info("tree run finished",
		zap.String("variant", variant),
		zap.Int("inserted", len(keys)),
		zap.Int("deleted", deleted),
		zap.Duration("elapsed", time.Since(start)),
	)

	return writeReport(c.App.Writer, variant, t, inner, len(keys), deleted)
}

func check(logger xlog.XLogger, t tree.BST[int], op string, key int) error {
	err := tree.Validate[int](t)
	if err == nil {
		return nil
	}
	logger.ErrorStack(err, "tree invariant broken", zap.String("op", op), zap.Int("key", key))
	return fmt.Errorf("%s %d: %w", op, key, err)
}

// inputKeys prefers the explicit keys over the random ones, exactly one
// of both has to be given.
func inputKeys(raw string, random int, rng *rand.Rand) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) > 0 && random > 0 {
		return nil, errors.New("keys and random are exclusive")
	}
	if random < 0 {
		return nil, fmt.Errorf("negative random count %d", random)
	}
	if random > 0 {
		return rng.Perm(random), nil
	}
	if len(raw) == 0 {
		return nil, errors.New("either keys or random is required")
	}

	fields := lo.Filter(strings.Split(raw, ","), func(s string, _ int) bool {
		return len(strings.TrimSpace(s)) > 0
	})
	keys := make([]int, 0, len(fields))
	for _, field := range fields {
		key, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", field, err)
		}
		keys = append(keys, key)
	}
	// Duplicates are no-ops for the trees.
	return lo.Uniq(keys), nil
}

func setupMetrics(exporter string, w io.Writer) (func() error, tree.EventRecorder, error) {
	nop := func() error { return nil }
	switch strings.ToLower(exporter) {
	case "", "none":
		return nop, nil, nil
	case "console":
		mp, err := observability.NewConsoleMeterProvider(w, time.Minute, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		observability.InitAppStats("cli")
		recorder, err := observability.NewTreeRecorder(mp.Meter(observability.MeterName("cli")))
		if err != nil {
			return nil, nil, err
		}
		return func() error { return mp.Shutdown(context.Background()) }, recorder, nil
	case "prometheus":
		registry := promclient.NewRegistry()
		mp, err := observability.NewPrometheusMeterProvider(registry)
		if err != nil {
			return nil, nil, err
		}
		observability.InitAppStats("cli")
		recorder, err := observability.NewTreeRecorder(mp.Meter(observability.MeterName("cli")))
		if err != nil {
			return nil, nil, err
		}
		return func() error {
			if err := observability.WritePrometheusText(w, registry); err != nil {
				return err
			}
			return mp.Shutdown(context.Background())
		}, recorder, nil
	default:
	}
	return nil, nil, fmt.Errorf("unknown metrics exporter %q", exporter)
}

func writeReport(w io.Writer, variant string, t, inner tree.BST[int], inserted, deleted int) error {
	r := report{
		Variant:   variant,
		Inserted:  inserted,
		Deleted:   deleted,
		Len:       t.Len(),
		Height:    t.Height(),
		LeafCount: t.LeafCount(),
		Keys:      tree.Keys[int](t),
	}
	if key, ok := t.Min(); ok {
		r.Min = &key
	}
	if key, ok := t.Max(); ok {
		r.Max = &key
	}
	switch typ := inner.(type) {
	case tree.AVLTree[int]:
		r.Balanced = lo.ToPtr(typ.IsBalanced())
	case tree.PlainTree[int]:
		r.Balanced = lo.ToPtr(typ.IsBalanced())
	case tree.RBTree[int]:
		r.BlackHeight = lo.ToPtr(typ.BlackHeight())
	default:
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
