// Package sheetlm compresses spreadsheet grids into a compact,
// structure-preserving representation for downstream language-model
// consumption.
package sheetlm

import (
	"fmt"

	"go.uber.org/zap"
)

// Options configures the compression pipeline.
type Options struct {
	// K is the neighborhood distance around structural anchors. Must be
	// >= 0.
	K int
	// MinRunLength is the minimum axis extent for a numeric component to
	// be emitted as a numeric range. Must be >= 1.
	MinRunLength int
	// SparsityCutoff discards anchor candidates whose empty-cell fraction
	// exceeds it. Must lie in [0, 1].
	SparsityCutoff float64
	// IoUThreshold is the overlap above which non-maximum suppression
	// drops the lower-scored anchor candidate. Must lie in (0, 1].
	IoUThreshold float64
	// PruneHomogeneous additionally drops retained rows/columns that are
	// uniform in value and format before indexing. Off by default so the
	// index covers every non-empty cell of the retained view.
	PruneHomogeneous bool
	// Logger receives per-stage progress. Nil means no logging.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the default compression options.
func DefaultOptions() Options {
	return Options{
		K:              2,
		MinRunLength:   2,
		SparsityCutoff: 0.9,
		IoUThreshold:   0.8,
	}
}

// Validate checks the options. It returns an error wrapping
// ErrConfiguration for any out-of-range value.
func (o Options) Validate() error {
	if o.K < 0 {
		return fmt.Errorf("%w: k must be >= 0, got %d", ErrConfiguration, o.K)
	}
	if o.MinRunLength < 1 {
		return fmt.Errorf("%w: min run length must be >= 1, got %d", ErrConfiguration, o.MinRunLength)
	}
	if o.SparsityCutoff < 0 || o.SparsityCutoff > 1 {
		return fmt.Errorf("%w: sparsity cutoff must lie in [0, 1], got %v", ErrConfiguration, o.SparsityCutoff)
	}
	if o.IoUThreshold <= 0 || o.IoUThreshold > 1 {
		return fmt.Errorf("%w: IoU threshold must lie in (0, 1], got %v", ErrConfiguration, o.IoUThreshold)
	}
	return nil
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}
