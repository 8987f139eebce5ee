package gridframe

import (
	"context"

	"github.com/go-gridframe/gridframe/errors"
	"github.com/go-gridframe/gridframe/internal/block"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// A Frame is a distributed collection of tabular blocks. It wraps a single
// Collection handle and provides transformations that are aware the elements
// are tabular blocks rather than opaque values. The underlying Collection is
// accessible via Collection(), but be careful doing so. Note that Collections
// are lazy, so transformations are not performed until an action (Collect,
// ColumnStats, Accumulate) forces evaluation.
//
// A Frame never mutates its Collection handle in place: every transformation
// returns a new Frame over a new handle.
type Frame struct {
	collection Collection
}

// FromCollection constructs a Frame from a Collection. No checking or
// validation of the Collection's elements occurs - a Collection whose
// elements are not tabular blocks will fail lazily, when an action is
// triggered. Callers who want fail-fast behavior should use
// ValidatedFromCollection instead.
func FromCollection(c Collection) *Frame {
	return &Frame{collection: c}
}

// ValidatedFromCollection constructs a Frame from a Collection, eagerly
// evaluating the Collection to verify that every element is a tabular block.
// A Collection which produces no elements at all is considered valid.
func ValidatedFromCollection(ctx context.Context, c Collection) (*Frame, error) {
	counted := c.MapPartitions(func(els []interface{}) ([]interface{}, error) {
		for _, el := range els {
			if !block.IsBlock(el) {
				return nil, errors.NotTabularError{Element: el}
			}
		}
		return []interface{}{len(els)}, nil
	}, nil)
	_, err := counted.Reduce(ctx, func(left interface{}, right interface{}) (interface{}, error) {
		return left.(int) + right.(int), nil
	})
	if err != nil {
		if _, empty := err.(errors.EmptyCollectionError); empty {
			return FromCollection(c), nil
		}
		return nil, err
	}
	return FromCollection(c), nil
}

// Collection returns the Collection handle underlying this Frame
func (f *Frame) Collection() Collection {
	return f.collection
}

// ApplyMap lazily applies fn to every cell of every tabular block, cell by
// cell, returning a new Frame. opts are passed through to the underlying
// Collection runtime unmodified, and may be nil. Nothing is computed until a
// downstream action executes; a cell-level failure surfaces at action time
// and aborts that action.
func (f *Frame) ApplyMap(fn CellOperation, opts *MapOptions) *Frame {
	return FromCollection(f.collection.Map(func(el interface{}) (interface{}, error) {
		b, ok := el.(*dataframe.DataFrame)
		if !ok {
			return nil, errors.NotTabularError{Element: el}
		}
		return block.ApplyMap(b, fn)
	}, opts))
}

// Column lazily projects the column labelled name out of every tabular block,
// returning a new Frame of single-column blocks. The label must exist in
// every block; a mismatch is not statically checked and fails at action time
// with the tabular engine's own error.
func (f *Frame) Column(name string) *Frame {
	return FromCollection(f.collection.Map(func(el interface{}) (interface{}, error) {
		b, ok := el.(*dataframe.DataFrame)
		if !ok {
			return nil, errors.NotTabularError{Element: el}
		}
		return block.Project(b, name)
	}, nil))
}

// Collect eagerly evaluates the transformation graph and combines every
// resulting block into a single tabular block via pairwise row-wise append.
// The reduction order is chosen by the underlying runtime, so the row order
// of the result across source partitions is unspecified - sort after
// collecting if order matters. A Frame which evaluates to zero blocks yields
// an EmptyCollectionError.
func (f *Frame) Collect(ctx context.Context) (*dataframe.DataFrame, error) {
	res, err := f.collection.Reduce(ctx, func(left interface{}, right interface{}) (interface{}, error) {
		lb, ok := left.(*dataframe.DataFrame)
		if !ok {
			return nil, errors.NotTabularError{Element: left}
		}
		rb, ok := right.(*dataframe.DataFrame)
		if !ok {
			return nil, errors.NotTabularError{Element: right}
		}
		return block.Append(lb, rb)
	})
	if err != nil {
		return nil, err
	}
	b, ok := res.(*dataframe.DataFrame)
	if !ok {
		return nil, errors.NotTabularError{Element: res}
	}
	return b, nil
}

// Accumulate eagerly evaluates the transformation graph and folds every
// resulting block into an Accumulator. One Accumulator is produced per
// partition with facc, then partition Accumulators are pairwise merged in
// the runtime's reduction order. An empty Frame yields an
// EmptyCollectionError.
func (f *Frame) Accumulate(ctx context.Context, facc AccumulatorFactory) (Accumulator, error) {
	perPartition := f.collection.MapPartitions(func(els []interface{}) ([]interface{}, error) {
		// a partition with no blocks contributes nothing, so a Frame whose
		// partitions are all empty reduces to an EmptyCollectionError rather
		// than a zero-valued Accumulator
		if len(els) == 0 {
			return nil, nil
		}
		acc := facc()
		for _, el := range els {
			b, ok := el.(*dataframe.DataFrame)
			if !ok {
				return nil, errors.NotTabularError{Element: el}
			}
			if err := acc.AccumulateBlock(b); err != nil {
				return nil, err
			}
		}
		return []interface{}{acc}, nil
	}, nil)
	res, err := perPartition.Reduce(ctx, func(left interface{}, right interface{}) (interface{}, error) {
		lacc, ok := left.(Accumulator)
		if !ok {
			return nil, errors.NotTabularError{Element: left}
		}
		racc, ok := right.(Accumulator)
		if !ok {
			return nil, errors.NotTabularError{Element: right}
		}
		if err := lacc.Merge(racc); err != nil {
			return nil, err
		}
		return lacc, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(Accumulator), nil
}

// ColumnStats eagerly computes count, mean, standard deviation, max and min
// for each of the given columns, across every block of the Frame. Every
// column must exist in every block and hold numeric values. At least one
// column must be requested.
func (f *Frame) ColumnStats(ctx context.Context, columns ...string) (*FrameStats, error) {
	if len(columns) == 0 {
		return nil, errors.NoColumnsError{}
	}
	acc, err := f.Accumulate(ctx, FrameStatsFactory(columns...))
	if err != nil {
		return nil, err
	}
	return acc.(*FrameStats), nil
}
