package collection

import (
	"os"
	"runtime"

	"github.com/go-gridframe/gridframe"
)

// conf is the filled-in form of a gridframe.RuntimeConf
type conf struct {
	maxConcurrency int64
	cacheSize      int
	tempDir        string
}

func fillConf(rc *gridframe.RuntimeConf) *conf {
	c := &conf{
		maxConcurrency: int64(runtime.NumCPU()),
		cacheSize:      32,
		tempDir:        os.TempDir(),
	}
	if rc == nil {
		return c
	}
	if rc.MaxConcurrency > 0 {
		c.maxConcurrency = rc.MaxConcurrency
	}
	if rc.CacheSize > 0 {
		c.cacheSize = rc.CacheSize
	}
	if rc.TempDir != "" {
		c.tempDir = rc.TempDir
	}
	return c
}

// A lazyCollection is one link in a lineage chain: either a source holding
// pre-partitioned elements, or a derived collection remembering its parent
// and the operation which transforms the parent's partitions. Nothing is
// computed until Reduce forces evaluation of the whole chain.
type lazyCollection struct {
	conf   *conf
	stats  *RunStats
	parent *lazyCollection
	op     operation       // nil for source collections
	source [][]interface{} // only for source collections
}

// Create builds a Collection from pre-partitioned source elements. The
// partitions are treated as immutable by the runtime. conf may be nil, in
// which case defaults apply.
func Create(partitions [][]interface{}, rc *gridframe.RuntimeConf) gridframe.Collection {
	return &lazyCollection{
		conf:   fillConf(rc),
		stats:  &RunStats{},
		source: partitions,
	}
}

// Map lazily applies fn to every element, returning a new Collection
func (c *lazyCollection) Map(fn gridframe.MapOperation, opts *gridframe.MapOptions) gridframe.Collection {
	return c.derive(&mapOp{fn: fn, opts: opts})
}

// MapPartitions lazily applies fn once per partition, returning a new Collection
func (c *lazyCollection) MapPartitions(fn gridframe.PartitionsOperation, opts *gridframe.MapOptions) gridframe.Collection {
	return c.derive(&partitionsOp{fn: fn, opts: opts})
}

// NumPartitions returns the number of partitions this Collection will
// evaluate to, accounting for redistribution hints along the lineage
func (c *lazyCollection) NumPartitions() int {
	if c.op != nil {
		if opts := c.op.options(); opts != nil && opts.NumPartitions > 0 {
			return opts.NumPartitions
		}
		return c.parent.NumPartitions()
	}
	return len(c.source)
}

// GetStatistics returns statistics for the most recent action against this
// Collection's lineage
func (c *lazyCollection) GetStatistics() gridframe.RuntimeStatistics {
	return c.stats
}

func (c *lazyCollection) derive(op operation) *lazyCollection {
	return &lazyCollection{
		conf:   c.conf,
		stats:  c.stats,
		parent: c,
		op:     op,
	}
}

// stages returns the lineage of c ordered from source to tip
func (c *lazyCollection) stages() []*lazyCollection {
	var chain []*lazyCollection
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// operation is one deferred transformation over a materialized partition
type operation interface {
	name() string
	run(els []interface{}) ([]interface{}, error)
	options() *gridframe.MapOptions
}

type mapOp struct {
	fn   gridframe.MapOperation
	opts *gridframe.MapOptions
}

func (o *mapOp) name() string { return "map" }

func (o *mapOp) run(els []interface{}) ([]interface{}, error) {
	out := make([]interface{}, len(els))
	for i, el := range els {
		next, err := o.fn(el)
		if err != nil {
			return nil, err
		}
		out[i] = next
	}
	return out, nil
}

func (o *mapOp) options() *gridframe.MapOptions { return o.opts }

type partitionsOp struct {
	fn   gridframe.PartitionsOperation
	opts *gridframe.MapOptions
}

func (o *partitionsOp) name() string { return "map_partitions" }

func (o *partitionsOp) run(els []interface{}) ([]interface{}, error) {
	return o.fn(els)
}

func (o *partitionsOp) options() *gridframe.MapOptions { return o.opts }
