package collection

import (
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-gridframe/gridframe"
)

// redistribute reassigns the elements of parts across numPartitions new
// partitions. When kfn is provided, each element is bucketed by the hash of
// its key, so equal keys land in the same partition; otherwise elements are
// distributed round-robin.
func redistribute(parts [][]interface{}, numPartitions int, kfn gridframe.KeyingOperation) ([][]interface{}, error) {
	out := make([][]interface{}, numPartitions)
	next := 0
	for _, part := range parts {
		for _, el := range part {
			bucket := next % numPartitions
			next++
			if kfn != nil {
				key, err := kfn(el)
				if err != nil {
					return nil, err
				}
				bucket = int(xxhash.Sum64(key) % uint64(numPartitions))
			}
			out[bucket] = append(out[bucket], el)
		}
	}
	return out, nil
}
