package pcache

import (
	"encoding/gob"
	"io"
	"time"

	"github.com/go-gridframe/gridframe/internal/block"
	"github.com/pierrec/lz4"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// nilCell stands in for nil cell values, which gob cannot encode inside an
// interface slot
type nilCell struct{}

func init() {
	// cell values travel inside interface{} slots, so their concrete types
	// must be registered for gob
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register("")
	gob.Register(false)
	gob.Register(time.Time{})
	gob.Register(nilCell{})
}

type blockData struct {
	Cols []string
	Rows [][]interface{}
}

// LZ4BlockCompressor serializes and compresses the blocks of a cached
// partition using the lz4 compression algorithm
type LZ4BlockCompressor struct{}

// NewLZ4BlockCompressor instantiates a new LZ4BlockCompressor
func NewLZ4BlockCompressor() *LZ4BlockCompressor {
	return &LZ4BlockCompressor{}
}

// Compress serializes and compresses partition blocks to a write stream
func (c *LZ4BlockCompressor) Compress(w io.Writer, blocks []*dataframe.DataFrame) error {
	payload := make([]blockData, len(blocks))
	for i, b := range blocks {
		rows := block.Rows(b)
		for _, row := range rows {
			for j, v := range row {
				if v == nil {
					row[j] = nilCell{}
				}
			}
		}
		payload[i] = blockData{Cols: block.ColumnNames(b), Rows: rows}
	}
	compressor := lz4.NewWriter(w)
	if err := gob.NewEncoder(compressor).Encode(payload); err != nil {
		return err
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes partition blocks from a read stream
func (c *LZ4BlockCompressor) Decompress(r io.Reader) ([]*dataframe.DataFrame, error) {
	decompressor := lz4.NewReader(r)
	var payload []blockData
	if err := gob.NewDecoder(decompressor).Decode(&payload); err != nil {
		return nil, err
	}
	blocks := make([]*dataframe.DataFrame, len(payload))
	for i, data := range payload {
		for _, row := range data.Rows {
			for j, v := range row {
				if _, ok := v.(nilCell); ok {
					row[j] = nil
				}
			}
		}
		b, err := block.FromRows(data.Cols, data.Rows)
		if err != nil {
			return nil, err
		}
		blocks[i] = b
	}
	return blocks, nil
}
