// Package csv provides Frames loaded from CSV data, using the tabular
// engine's own CSV importer for parsing and type inference.
package csv

import (
	"context"
	"io"

	"github.com/go-gridframe/gridframe"
	"github.com/go-gridframe/gridframe/datasource/memory"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// Conf configures a CSV datasource
type Conf struct {
	// PartitionSize is the number of rows per tabular block. Each block
	// becomes its own partition. Defaults to 128.
	PartitionSize int
	// Runtime configures the local Collection runtime. May be nil.
	Runtime *gridframe.RuntimeConf
}

// CreateFrame loads CSV data from r, splits the result into blocks of
// PartitionSize rows, and wraps them in a Frame, one block per partition.
// The first row is the header; column types are inferred.
func CreateFrame(ctx context.Context, r io.ReadSeeker, conf *Conf) (*gridframe.Frame, error) {
	if conf == nil {
		conf = &Conf{}
	}
	size := conf.PartitionSize
	if size <= 0 {
		size = 128
	}
	loaded, err := imports.LoadFromCSV(ctx, r, imports.CSVLoadOptions{
		InferDataTypes: true,
	})
	if err != nil {
		return nil, err
	}
	numRows := loaded.NRows()
	var blocks []*dataframe.DataFrame
	for start := 0; start < numRows; start += size {
		end := start + size - 1
		if end > numRows-1 {
			end = numRows - 1
		}
		s, e := start, end
		blocks = append(blocks, loaded.Copy(dataframe.Range{Start: &s, End: &e}))
	}
	return memory.CreateFrame(blocks, &memory.Conf{Runtime: conf.Runtime}), nil
}
