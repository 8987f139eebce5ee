package pcache

import (
	"container/list"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-gridframe/gridframe/errors"
	"github.com/go-gridframe/gridframe/logging"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Cache is a cache for materialized block partitions. Get removes the
// partition from the cache and returns it, if present.
type Cache interface {
	Add(key string, blocks []*dataframe.DataFrame) error
	Get(key string) ([]*dataframe.DataFrame, error)
	CurrentSize() int
	Destroy() error
}

// LRUConfig configures an LRU partition Cache
type LRUConfig struct {
	// Size is the number of partitions held in memory before cold
	// partitions are spilled to disk
	Size int
	// DiskPath is the directory spilled partitions are written beneath
	DiskPath string
}

type cachedPartition struct {
	key    string
	blocks []*dataframe.DataFrame
}

// lru is an LRU Cache which holds recently-added partitions in memory and
// spills cold partitions to lz4-compressed files on disk
type lru struct {
	config     *LRUConfig
	compressor *LZ4BlockCompressor
	lock       sync.Mutex
	pmap       map[string]*list.Element
	recent     *list.List // front is newest, back is oldest
	spilled    map[string]string
	tempDir    string
}

// NewLRU produces an LRU partition Cache
func NewLRU(config *LRUConfig) (Cache, error) {
	if config.Size < 1 {
		return nil, fmt.Errorf("LRUConfig.Size %d must be at least 1", config.Size)
	}
	tempDir, err := ioutil.TempDir(config.DiskPath, "gridframe-pcache-")
	if err != nil {
		return nil, err
	}
	return &lru{
		config:     config,
		compressor: NewLZ4BlockCompressor(),
		pmap:       make(map[string]*list.Element),
		recent:     list.New(),
		spilled:    make(map[string]string),
		tempDir:    tempDir,
	}, nil
}

// Add caches the blocks of one partition under key, evicting the coldest
// in-memory partition to disk if the cache is full
func (c *lru) Add(key string, blocks []*dataframe.DataFrame) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if e, ok := c.pmap[key]; ok {
		c.recent.Remove(e)
	}
	c.pmap[key] = c.recent.PushFront(&cachedPartition{key: key, blocks: blocks})
	for len(c.pmap) > c.config.Size {
		oldest := c.recent.Back()
		if oldest == nil {
			break
		}
		c.recent.Remove(oldest)
		victim := oldest.Value.(*cachedPartition)
		delete(c.pmap, victim.key)
		if err := c.spill(victim); err != nil {
			return err
		}
	}
	return nil
}

// Get removes a partition from the cache and returns its blocks, reloading
// from disk if the partition was spilled
func (c *lru) Get(key string) ([]*dataframe.DataFrame, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if e, ok := c.pmap[key]; ok {
		c.recent.Remove(e)
		delete(c.pmap, key)
		return e.Value.(*cachedPartition).blocks, nil
	}
	if filename, ok := c.spilled[key]; ok {
		delete(c.spilled, key)
		return c.load(filename)
	}
	return nil, errors.NoSuchPartitionError{Key: key}
}

// CurrentSize returns the number of partitions held in memory
func (c *lru) CurrentSize() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.pmap)
}

// Destroy discards all cached partitions and removes spilled files
func (c *lru) Destroy() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.pmap = make(map[string]*list.Element)
	c.recent = list.New()
	c.spilled = make(map[string]string)
	return os.RemoveAll(c.tempDir)
}

func (c *lru) spill(victim *cachedPartition) error {
	filename := path.Join(c.tempDir, fmt.Sprintf("%x.part.lz4", xxhash.Sum64String(victim.key)))
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := c.compressor.Compress(f, victim.blocks); err != nil {
		return err
	}
	c.spilled[victim.key] = filename
	logging.Logf(logging.DebugLevel, "spilled partition %s to %s", victim.key, filename)
	return nil
}

func (c *lru) load(filename string) ([]*dataframe.DataFrame, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer os.Remove(filename)
	return c.compressor.Decompress(f)
}
