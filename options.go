package gridframe

// MapOptions are scheduling hints for a Map or MapPartitions transformation.
// They are passed through to the underlying Collection runtime unmodified.
type MapOptions struct {
	// NumPartitions, when positive, requests that the results of the
	// transformation be redistributed across this many partitions.
	NumPartitions int
	// PartitionKey, when set alongside NumPartitions, buckets redistributed
	// elements by the hash of the key it produces. When nil, elements are
	// distributed round-robin.
	PartitionKey KeyingOperation
}

// RuntimeConf configures the local Collection runtime. All configuration is
// explicit and passed at construction time - importing GridFrame has no global
// side effects. The zero value is usable; unset fields assume defaults.
type RuntimeConf struct {
	// MaxConcurrency bounds the number of partitions evaluated simultaneously.
	// Defaults to the number of CPUs.
	MaxConcurrency int64
	// CacheSize is the number of materialized partitions held in memory
	// before cold partitions are spilled to compressed files on disk.
	// Defaults to 32.
	CacheSize int
	// TempDir is the directory used for spilled partitions. Defaults to the
	// system temporary directory.
	TempDir string
}
