package tree

import (
	"go.uber.org/zap"
)

type treeOptions struct {
	logger   *zap.Logger
	recorder EventRecorder
}

type TreeOption func(opts *treeOptions)

// WithLogger receives the rotation, fixup and splay decisions at DEBUG level.
func WithLogger(logger *zap.Logger) TreeOption {
	return func(opts *treeOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

func WithEventRecorder(recorder EventRecorder) TreeOption {
	return func(opts *treeOptions) {
		if recorder != nil {
			opts.recorder = recorder
		}
	}
}

func applyTreeOptions(variant Variant, opts ...TreeOption) *treeOptions {
	o := &treeOptions{
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	o.logger = o.logger.Named("xtree").With(zap.Stringer("variant", variant))
	return o
}

type nopRecorder struct{}

func (nopRecorder) Rotated(Variant, Direction) {}

func (nopRecorder) Rebalanced(Variant, string) {}

func (nopRecorder) Splayed(int) {}
