package block

import (
	"fmt"

	"github.com/go-gridframe/gridframe/errors"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// IsBlock returns true iff el is a tabular block
func IsBlock(el interface{}) bool {
	_, ok := el.(*dataframe.DataFrame)
	return ok
}

// ColumnNames returns the column labels of a block, in column order
func ColumnNames(b *dataframe.DataFrame) []string {
	names := make([]string, len(b.Series))
	for i, s := range b.Series {
		names[i] = s.Name()
	}
	return names
}

// seriesType returns a short name for the concrete series type of s
func seriesType(s dataframe.Series) string {
	switch s.(type) {
	case *dataframe.SeriesInt64:
		return "int64"
	case *dataframe.SeriesFloat64:
		return "float64"
	case *dataframe.SeriesString:
		return "string"
	default:
		return fmt.Sprintf("%T", s)
	}
}

// columnSignature returns the column labels of a block paired with their
// series types, in column order
func columnSignature(b *dataframe.DataFrame) []string {
	sig := make([]string, len(b.Series))
	for i, s := range b.Series {
		sig[i] = s.Name() + " " + seriesType(s)
	}
	return sig
}

// Append produces a new block containing the rows of left followed by the
// rows of right. Neither input is modified. The blocks must share the same
// column labels and series types, in the same order - a label-only match is
// not enough, since appending a mismatched value to a series either coerces
// it silently or panics inside the tabular engine.
func Append(left *dataframe.DataFrame, right *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	lsig := columnSignature(left)
	rsig := columnSignature(right)
	if len(lsig) != len(rsig) {
		return nil, errors.IncompatibleSchemasError{Left: lsig, Right: rsig}
	}
	for i := range lsig {
		if lsig[i] != rsig[i] {
			return nil, errors.IncompatibleSchemasError{Left: lsig, Right: rsig}
		}
	}
	out := left.Copy()
	numRows := right.NRows()
	for r := 0; r < numRows; r++ {
		vals := make([]interface{}, len(right.Series))
		for c, s := range right.Series {
			vals[c] = s.Value(r)
		}
		out.Append(nil, vals...)
	}
	return out, nil
}

// ApplyMap produces a new block by applying fn to every cell of b, cell by
// cell. b itself is not modified. The value returned by fn must be assignable
// to the cell's column type.
func ApplyMap(b *dataframe.DataFrame, fn func(val interface{}) (interface{}, error)) (*dataframe.DataFrame, error) {
	out := b.Copy()
	for _, s := range out.Series {
		numRows := s.NRows()
		for r := 0; r < numRows; r++ {
			next, err := fn(s.Value(r))
			if err != nil {
				return nil, err
			}
			s.Update(r, next)
		}
	}
	return out, nil
}

// Project produces a new single-column block containing the column of b
// labelled name. The label lookup error of the underlying tabular engine is
// returned as-is if no such column exists.
func Project(b *dataframe.DataFrame, name string) (*dataframe.DataFrame, error) {
	idx, err := b.NameToColumn(name)
	if err != nil {
		return nil, err
	}
	return dataframe.NewDataFrame(b.Series[idx].Copy()), nil
}

// Rows returns the positional cell values of every row of b
func Rows(b *dataframe.DataFrame) [][]interface{} {
	numRows := b.NRows()
	rows := make([][]interface{}, numRows)
	for r := 0; r < numRows; r++ {
		row := make([]interface{}, len(b.Series))
		for c, s := range b.Series {
			row[c] = s.Value(r)
		}
		rows[r] = row
	}
	return rows
}

// FromRows builds a block from ordered column labels and positional row
// values. The series type of each column is inferred from the first non-nil
// value in that column; a column with no values becomes a string column.
func FromRows(cols []string, rows [][]interface{}) (*dataframe.DataFrame, error) {
	for r := range rows {
		if len(rows[r]) != len(cols) {
			return nil, errors.RaggedRowError{Row: r, Expected: len(cols), Actual: len(rows[r])}
		}
	}
	series := make([]dataframe.Series, len(cols))
	for c, name := range cols {
		vals := make([]interface{}, len(rows))
		var sample interface{}
		for r := range rows {
			vals[r] = rows[r][c]
			if sample == nil {
				sample = vals[r]
			}
		}
		series[c] = newSeries(name, sample, vals)
	}
	return dataframe.NewDataFrame(series...), nil
}

func newSeries(name string, sample interface{}, vals []interface{}) dataframe.Series {
	switch sample.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		normalized := make([]interface{}, len(vals))
		for i, v := range vals {
			if v == nil {
				continue
			}
			normalized[i] = toInt64(v)
		}
		return dataframe.NewSeriesInt64(name, nil, normalized...)
	case float32, float64:
		normalized := make([]interface{}, len(vals))
		for i, v := range vals {
			if v == nil {
				continue
			}
			if f32, ok := v.(float32); ok {
				normalized[i] = float64(f32)
			} else {
				normalized[i] = v
			}
		}
		return dataframe.NewSeriesFloat64(name, nil, normalized...)
	case bool:
		return dataframe.NewSeriesGeneric(name, false, nil, vals...)
	default:
		return dataframe.NewSeriesString(name, nil, vals...)
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	}
	return 0
}
