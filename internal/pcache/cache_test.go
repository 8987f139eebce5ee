package pcache

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/go-gridframe/gridframe/internal/block"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/stretchr/testify/require"
)

func createTestBlocks(t *testing.T, tag string) []*dataframe.DataFrame {
	return []*dataframe.DataFrame{
		dataframe.NewDataFrame(
			dataframe.NewSeriesString("name", nil, tag, tag+"-2"),
			dataframe.NewSeriesInt64("score", nil, 1, 2),
		),
	}
}

func TestCompressorRoundTrip(t *testing.T) {
	blocks := createTestBlocks(t, "tea")
	compressor := NewLZ4BlockCompressor()
	var buf bytes.Buffer
	require.Nil(t, compressor.Compress(&buf, blocks))

	restored, err := compressor.Decompress(&buf)
	require.Nil(t, err)
	require.Equal(t, 1, len(restored))
	require.Equal(t, block.ColumnNames(blocks[0]), block.ColumnNames(restored[0]))
	require.Equal(t, block.Rows(blocks[0]), block.Rows(restored[0]))
}

func TestAddAndGet(t *testing.T) {
	cache, err := NewLRU(&LRUConfig{Size: 4, DiskPath: t.TempDir()})
	require.Nil(t, err)
	defer cache.Destroy()

	blocks := createTestBlocks(t, "tea")
	require.Nil(t, cache.Add("p0", blocks))
	require.Equal(t, 1, cache.CurrentSize())

	// Get removes the partition from the cache
	got, err := cache.Get("p0")
	require.Nil(t, err)
	require.Equal(t, blocks, got)
	require.Equal(t, 0, cache.CurrentSize())

	_, err = cache.Get("p0")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "does not exist")
}

func TestEvictionSpillsToDisk(t *testing.T) {
	cache, err := NewLRU(&LRUConfig{Size: 2, DiskPath: t.TempDir()})
	require.Nil(t, err)
	defer cache.Destroy()

	var blocks [][]*dataframe.DataFrame
	for i := 0; i < 4; i++ {
		blocks = append(blocks, createTestBlocks(t, fmt.Sprintf("tag-%d", i)))
		require.Nil(t, cache.Add(fmt.Sprintf("p%d", i), blocks[i]))
	}
	require.Equal(t, 2, cache.CurrentSize())

	// spilled partitions are reloaded transparently, with equal contents
	for i := 0; i < 4; i++ {
		got, err := cache.Get(fmt.Sprintf("p%d", i))
		require.Nil(t, err)
		require.Equal(t, 1, len(got))
		require.Equal(t, block.Rows(blocks[i][0]), block.Rows(got[0]))
	}
}

func TestDestroyRemovesSpillDir(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewLRU(&LRUConfig{Size: 1, DiskPath: dir})
	require.Nil(t, err)
	require.Nil(t, cache.Add("p0", createTestBlocks(t, "tea")))
	require.Nil(t, cache.Add("p1", createTestBlocks(t, "coffee"))) // spills p0
	require.Nil(t, cache.Destroy())

	entries, err := os.ReadDir(dir)
	require.Nil(t, err)
	require.Equal(t, 0, len(entries))
}

func TestInvalidSize(t *testing.T) {
	_, err := NewLRU(&LRUConfig{Size: 0, DiskPath: t.TempDir()})
	require.NotNil(t, err)
}
