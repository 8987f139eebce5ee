package gridframe

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about the most
// recent action executed by a Collection runtime. A runtime which tracks
// statistics exposes them by additionally implementing StatisticsProvider.
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the most recent action
	GetStartTime() time.Time
	// GetRuntime returns the running time of the most recent action
	GetRuntime() time.Duration
	// GetNumPartitionsProcessed returns the number of partitions evaluated
	GetNumPartitionsProcessed() int64
	// GetNumElementsProcessed returns the number of elements produced by evaluated partitions
	GetNumElementsProcessed() int64
}

// StatisticsProvider is implemented by Collection runtimes which track
// RuntimeStatistics
type StatisticsProvider interface {
	// GetStatistics returns statistics for the most recent action
	GetStatistics() RuntimeStatistics
}
