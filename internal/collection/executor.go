package collection

import (
	"context"
	"sync"

	"github.com/go-gridframe/gridframe"
	"github.com/go-gridframe/gridframe/errors"
	"github.com/go-gridframe/gridframe/internal/pcache"
	"github.com/go-gridframe/gridframe/logging"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

// Reduce eagerly evaluates the transformation graph and pairwise-combines
// all resulting elements with fn. Partitions are folded locally first, then
// partition results are combined in completion order, which is not
// deterministic - fn must be associative and commutative.
func (c *lazyCollection) Reduce(ctx context.Context, fn gridframe.ReductionOperation) (interface{}, error) {
	c.stats.start()
	defer c.stats.finish()
	evaluated, err := c.evaluate(ctx)
	if err != nil {
		return nil, err
	}
	defer evaluated.destroy()

	sem := semaphore.NewWeighted(c.conf.maxConcurrency)
	numPartitions := evaluated.numPartitions()
	partials := make(chan interface{}, numPartitions)
	errs := make(chan error, numPartitions)
	var wg sync.WaitGroup
	for i := 0; i < numPartitions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				errs <- err
				return
			}
			defer sem.Release(1)
			els, err := evaluated.take(i)
			if err != nil {
				errs <- err
				return
			}
			if len(els) == 0 {
				return
			}
			acc := els[0]
			for _, el := range els[1:] {
				acc, err = safeReduce(fn, acc, el)
				if err != nil {
					errs <- err
					return
				}
			}
			partials <- acc
		}(i)
	}

	// fold partition results as they arrive
	var result interface{}
	var foldErr error
	contributions := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for partial := range partials {
			if foldErr != nil {
				continue
			}
			if contributions == 0 {
				result = partial
			} else {
				result, foldErr = safeReduce(fn, result, partial)
			}
			contributions++
		}
	}()
	wg.Wait()
	close(partials)
	close(errs)
	<-done

	var merr *multierror.Error
	for err := range errs {
		merr = multierror.Append(merr, err)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	if foldErr != nil {
		return nil, foldErr
	}
	if contributions == 0 {
		return nil, errors.EmptyCollectionError{}
	}
	return result, nil
}

// evaluate materializes every stage of the lineage in order, evaluating the
// partitions of each stage in parallel. The caller owns the returned
// materialized set and must destroy it.
func (c *lazyCollection) evaluate(ctx context.Context) (*materialized, error) {
	cache, err := pcache.NewLRU(&pcache.LRUConfig{
		Size:     c.conf.cacheSize,
		DiskPath: c.conf.tempDir,
	})
	if err != nil {
		return nil, err
	}
	stages := c.stages()
	current := newMaterialized(cache)
	for _, part := range stages[0].source {
		if err := current.put(part); err != nil {
			current.destroy()
			return nil, err
		}
	}
	for _, stage := range stages[1:] {
		next, err := runStage(ctx, stage, current, cache, c.conf, c.stats)
		if err != nil {
			current.destroy()
			return nil, err
		}
		current = next
	}
	return current, nil
}

// runStage applies one stage's operation to every partition of prev, in
// parallel, honoring the stage's redistribution hint
func runStage(ctx context.Context, stage *lazyCollection, prev *materialized, cache pcache.Cache, cf *conf, stats *RunStats) (*materialized, error) {
	sem := semaphore.NewWeighted(cf.maxConcurrency)
	numPartitions := prev.numPartitions()
	results := make([][]interface{}, numPartitions)
	errs := make(chan error, numPartitions)
	var wg sync.WaitGroup
	for i := 0; i < numPartitions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				errs <- err
				return
			}
			defer sem.Release(1)
			els, err := prev.take(i)
			if err != nil {
				errs <- err
				return
			}
			out, err := safeRun(stage.op, els)
			if err != nil {
				errs <- err
				return
			}
			results[i] = out
			stats.partitionProcessed(int64(len(out)))
		}(i)
	}
	wg.Wait()
	close(errs)
	var merr *multierror.Error
	for err := range errs {
		merr = multierror.Append(merr, err)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	logging.Logf(logging.DebugLevel, "%s stage evaluated %d partitions", stage.op.name(), numPartitions)
	if opts := stage.op.options(); opts != nil && opts.NumPartitions > 0 {
		redistributed, err := redistribute(results, opts.NumPartitions, opts.PartitionKey)
		if err != nil {
			return nil, err
		}
		results = redistributed
	}
	next := newMaterialized(cache)
	for _, els := range results {
		if err := next.put(els); err != nil {
			return nil, err
		}
	}
	return next, nil
}
