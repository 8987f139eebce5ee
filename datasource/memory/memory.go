// Package memory provides Frames and Collections backed by in-memory
// tabular blocks, primarily for testing and for data which is already
// resident in the process.
package memory

import (
	"github.com/go-gridframe/gridframe"
	"github.com/go-gridframe/gridframe/internal/collection"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Conf configures a memory datasource
type Conf struct {
	// NumPartitions is the number of partitions to divide blocks across.
	// Defaults to one partition per block.
	NumPartitions int
	// Runtime configures the local Collection runtime. May be nil.
	Runtime *gridframe.RuntimeConf
}

// CreateCollection builds a Collection from in-memory tabular blocks,
// distributing the blocks round-robin across partitions. Zero blocks yield a
// Collection with zero partitions, against which any action fails with an
// EmptyCollectionError.
func CreateCollection(blocks []*dataframe.DataFrame, conf *Conf) gridframe.Collection {
	if conf == nil {
		conf = &Conf{}
	}
	numPartitions := conf.NumPartitions
	if numPartitions <= 0 {
		numPartitions = len(blocks)
	}
	partitions := make([][]interface{}, numPartitions)
	for i, b := range blocks {
		idx := i % numPartitions
		partitions[idx] = append(partitions[idx], b)
	}
	return collection.Create(partitions, conf.Runtime)
}

// CreateFrame wraps CreateCollection in an unchecked Frame
func CreateFrame(blocks []*dataframe.DataFrame, conf *Conf) *gridframe.Frame {
	return gridframe.FromCollection(CreateCollection(blocks, conf))
}
