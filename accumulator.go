package gridframe

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// An Accumulator siphons data from tabular blocks into a custom data
// structure. One Accumulator is produced per partition, then all partition
// Accumulators are pairwise merged, in an order chosen by the runtime, into a
// single result. Merge must therefore be associative and commutative.
// Accumulators are best suited to small results (counters, aggregates); the
// full rows of a Frame are better retrieved with Collect.
type Accumulator interface {
	AccumulateBlock(b *dataframe.DataFrame) error // AccumulateBlock folds one tabular block into this Accumulator
	Merge(o Accumulator) error                    // Merge merges another Accumulator into this one
	ToBytes() ([]byte, error)                     // ToBytes serializes this Accumulator
	FromBytes(buf []byte) (Accumulator, error)    // FromBytes produces a new Accumulator from serialized data
}
