package gridframe

import "context"

// A Collection is a distributed, partitioned, lazily-evaluated sequence of
// opaque elements. Transformations (Map, MapPartitions) are descriptions of
// work and perform no computation until an action (Reduce) forces evaluation
// of the pending transformation graph. GridFrame ships a local in-process
// implementation (see the datasource packages); any runtime satisfying this
// contract may be wrapped by a Frame.
type Collection interface {
	// Map lazily applies fn to every element of the Collection, returning a
	// new Collection. opts may carry scheduling hints and may be nil.
	Map(fn MapOperation, opts *MapOptions) Collection
	// MapPartitions lazily applies fn once per partition, to all elements of
	// that partition at once. fn may return zero or more result elements.
	MapPartitions(fn PartitionsOperation, opts *MapOptions) Collection
	// Reduce eagerly evaluates the transformation graph and pairwise-combines
	// all resulting elements with fn, in an order of the runtime's choosing.
	// fn must therefore be associative and commutative.
	Reduce(ctx context.Context, fn ReductionOperation) (interface{}, error)
	// NumPartitions returns the number of partitions this Collection will
	// evaluate to.
	NumPartitions() int
}
