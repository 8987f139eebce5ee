// Package jsonl provides Frames parsed from JSON Lines data. Each input line
// is one row; column values are extracted by path, so nested fields may be
// reached with dot notation (e.g. "coords.x").
package jsonl

import (
	"github.com/go-gridframe/gridframe"
	"github.com/go-gridframe/gridframe/datasource/memory"
	"github.com/go-gridframe/gridframe/errors"
	"github.com/go-gridframe/gridframe/internal/block"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/tidwall/gjson"
)

// Conf configures a JSONL datasource
type Conf struct {
	// PartitionSize is the number of rows per tabular block. Each block
	// becomes its own partition. Defaults to 128.
	PartitionSize int
	// Columns is the ordered set of column paths to extract from each line.
	// Required.
	Columns []string
	// Runtime configures the local Collection runtime. May be nil.
	Runtime *gridframe.RuntimeConf
}

// CreateFrame parses JSONL lines into tabular blocks of PartitionSize rows
// and wraps them in a Frame, one block per partition
func CreateFrame(data [][]byte, conf *Conf) (*gridframe.Frame, error) {
	blocks, err := Parse(data, conf)
	if err != nil {
		return nil, err
	}
	return memory.CreateFrame(blocks, &memory.Conf{Runtime: runtimeConf(conf)}), nil
}

// Parse converts JSONL lines into tabular blocks of PartitionSize rows. The
// series type of each column is inferred from the JSON type of its first
// non-null value: strings stay strings, numbers become float64, booleans
// stay booleans. Missing or null fields become nil cells.
func Parse(data [][]byte, conf *Conf) ([]*dataframe.DataFrame, error) {
	if conf == nil || len(conf.Columns) == 0 {
		return nil, errors.NoColumnsError{}
	}
	size := conf.PartitionSize
	if size <= 0 {
		size = 128
	}
	var blocks []*dataframe.DataFrame
	rows := make([][]interface{}, 0, size)
	for _, line := range data {
		parsed := gjson.ParseBytes(line)
		row := make([]interface{}, len(conf.Columns))
		for c, col := range conf.Columns {
			row[c] = parseValue(parsed.Get(col))
		}
		rows = append(rows, row)
		if len(rows) == size {
			b, err := block.FromRows(conf.Columns, rows)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
			rows = make([][]interface{}, 0, size)
		}
	}
	if len(rows) > 0 {
		b, err := block.FromRows(conf.Columns, rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func parseValue(res gjson.Result) interface{} {
	if !res.Exists() {
		return nil
	}
	switch res.Type {
	case gjson.String:
		return res.String()
	case gjson.Number:
		return res.Float()
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Null:
		return nil
	default:
		// sub-objects and arrays are retained as raw JSON text
		return res.Raw
	}
}

func runtimeConf(conf *Conf) *gridframe.RuntimeConf {
	if conf == nil {
		return nil
	}
	return conf.Runtime
}
