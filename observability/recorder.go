package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/tree"
)

var _ tree.EventRecorder = (*TreeRecorder)(nil)

// TreeRecorder turns the structural events of the trees into counters.
// The rotation attribute sets are built once, a rotation is a hot path.
type TreeRecorder struct {
	ctx         context.Context
	rotations   metric.Int64Counter
	rebalances  metric.Int64Counter
	splayDepth  metric.Int64Histogram
	rotateAttrs map[rotateKey]metric.AddOption
}

type rotateKey struct {
	variant tree.Variant
	dir     tree.Direction
}

func NewTreeRecorder(meter metric.Meter) (*TreeRecorder, error) {
	rotations, err := meter.Int64Counter(
		"xtree.rotations",
		metric.WithDescription("The rotations performed by the balancing code."),
		metric.WithUnit("{rotation}"),
	)
	if err != nil {
		return nil, err
	}
	rebalances, err := meter.Int64Counter(
		"xtree.rebalances",
		metric.WithDescription("The rebalance scenarios handled by the trees."),
		metric.WithUnit("{scenario}"),
	)
	if err != nil {
		return nil, err
	}
	splayDepth, err := meter.Int64Histogram(
		"xtree.splay.depth",
		metric.WithDescription("The depth of a node before it has been splayed to the root."),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32, 64),
	)
	if err != nil {
		return nil, err
	}

	r := &TreeRecorder{
		ctx:         context.Background(),
		rotations:   rotations,
		rebalances:  rebalances,
		splayDepth:  splayDepth,
		rotateAttrs: make(map[rotateKey]metric.AddOption, 10),
	}
	for _, variant := range []tree.Variant{tree.AVL, tree.RedBlack, tree.Splay} {
		for _, dir := range []tree.Direction{tree.Left, tree.Right} {
			r.rotateAttrs[rotateKey{variant, dir}] = metric.WithAttributeSet(attribute.NewSet(
				attribute.String("variant", variant.String()),
				attribute.String("direction", dir.String()),
			))
		}
	}
	return r, nil
}

func (r *TreeRecorder) Rotated(variant tree.Variant, dir tree.Direction) {
	opt, ok := r.rotateAttrs[rotateKey{variant, dir}]
	if !ok {
		opt = metric.WithAttributes(
			attribute.String("variant", variant.String()),
			attribute.String("direction", dir.String()),
		)
	}
	r.rotations.Add(r.ctx, 1, opt)
}

func (r *TreeRecorder) Rebalanced(variant tree.Variant, scenario string) {
	r.rebalances.Add(r.ctx, 1, metric.WithAttributes(
		attribute.String("variant", variant.String()),
		attribute.String("scenario", scenario),
	))
}

func (r *TreeRecorder) Splayed(depth int) {
	r.splayDepth.Record(r.ctx, int64(depth))
}
