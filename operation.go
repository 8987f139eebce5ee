package gridframe

// MapOperation - A generic function for transforming a single element of a Collection
type MapOperation func(el interface{}) (interface{}, error)

// PartitionsOperation - A generic function for transforming all elements of a partition at once, returning zero or more result elements
type PartitionsOperation func(els []interface{}) ([]interface{}, error)

// ReductionOperation - A generic function for pairwise-combining elements. right is merged into the result and discarded. Reduction order is chosen by the runtime, so a ReductionOperation must be associative and commutative.
type ReductionOperation func(left interface{}, right interface{}) (interface{}, error)

// KeyingOperation - A generic function for generating a key from an element, used to bucket elements during redistribution
type KeyingOperation func(el interface{}) ([]byte, error)

// CellOperation - A generic function for transforming a single cell value within a tabular block. The result must be assignable to the cell's column type.
type CellOperation func(val interface{}) (interface{}, error)

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator
