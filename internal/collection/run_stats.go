package collection

import (
	"sync/atomic"
	"time"
)

// RunStats tracks statistics about the most recent action executed against a
// lineage. It implements gridframe.RuntimeStatistics.
type RunStats struct {
	startTime           time.Time
	totalRuntime        int64
	partitionsProcessed int64
	elementsProcessed   int64
}

// start resets counters at the beginning of an action
func (rs *RunStats) start() {
	rs.startTime = time.Now()
	atomic.StoreInt64(&rs.totalRuntime, 0)
	atomic.StoreInt64(&rs.partitionsProcessed, 0)
	atomic.StoreInt64(&rs.elementsProcessed, 0)
}

// finish completes statistics tracking for an action
func (rs *RunStats) finish() {
	atomic.StoreInt64(&rs.totalRuntime, time.Since(rs.startTime).Nanoseconds())
}

// partitionProcessed records the evaluation of one partition which produced
// numElements elements
func (rs *RunStats) partitionProcessed(numElements int64) {
	atomic.AddInt64(&rs.partitionsProcessed, 1)
	atomic.AddInt64(&rs.elementsProcessed, numElements)
}

// GetStartTime returns the start time of the most recent action
func (rs *RunStats) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the most recent action
func (rs *RunStats) GetRuntime() time.Duration {
	return time.Duration(atomic.LoadInt64(&rs.totalRuntime))
}

// GetNumPartitionsProcessed returns the number of partitions evaluated by the most recent action
func (rs *RunStats) GetNumPartitionsProcessed() int64 {
	return atomic.LoadInt64(&rs.partitionsProcessed)
}

// GetNumElementsProcessed returns the number of elements produced by evaluated partitions
func (rs *RunStats) GetNumElementsProcessed() int64 {
	return atomic.LoadInt64(&rs.elementsProcessed)
}
