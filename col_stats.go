package gridframe

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"
	"strings"

	"github.com/go-gridframe/gridframe/errors"
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// FrameStatsFactory returns an AccumulatorFactory which produces FrameStats
// Accumulators over the given columns
func FrameStatsFactory(columns ...string) AccumulatorFactory {
	return func() Accumulator {
		return CreateFrameStats(columns...)
	}
}

// A ColumnStatCounter is a running aggregate (count, mean, standard
// deviation, max, min) over the numeric values of a single column. Counters
// merge associatively and commutatively, so partition counters may be
// combined in any order without affecting the result.
type ColumnStatCounter struct {
	col   string
	count int64
	mean  float64
	m2    float64
	max   float64
	min   float64
}

// Column returns the label of the column this counter aggregates
func (c *ColumnStatCounter) Column() string {
	return c.col
}

// Count returns the number of values accumulated so far
func (c *ColumnStatCounter) Count() int64 {
	return c.count
}

// Mean returns the arithmetic mean of the accumulated values
func (c *ColumnStatCounter) Mean() float64 {
	return c.mean
}

// StdDev returns the population standard deviation of the accumulated values
func (c *ColumnStatCounter) StdDev() float64 {
	if c.count == 0 {
		return math.NaN()
	}
	return math.Sqrt(c.m2 / float64(c.count))
}

// Max returns the largest accumulated value
func (c *ColumnStatCounter) Max() float64 {
	return c.max
}

// Min returns the smallest accumulated value
func (c *ColumnStatCounter) Min() float64 {
	return c.min
}

// accumulate folds a single value in, using Welford's online update
func (c *ColumnStatCounter) accumulate(v float64) {
	c.count++
	delta := v - c.mean
	c.mean += delta / float64(c.count)
	c.m2 += delta * (v - c.mean)
	if c.count == 1 || v > c.max {
		c.max = v
	}
	if c.count == 1 || v < c.min {
		c.min = v
	}
}

// merge combines another counter into this one using the parallel variance
// combination, which is associative and commutative
func (c *ColumnStatCounter) merge(o *ColumnStatCounter) {
	if o.count == 0 {
		return
	}
	if c.count == 0 {
		c.count = o.count
		c.mean = o.mean
		c.m2 = o.m2
		c.max = o.max
		c.min = o.min
		return
	}
	total := c.count + o.count
	delta := o.mean - c.mean
	c.m2 += o.m2 + delta*delta*float64(c.count)*float64(o.count)/float64(total)
	c.mean = (c.mean*float64(c.count) + o.mean*float64(o.count)) / float64(total)
	c.count = total
	if o.max > c.max {
		c.max = o.max
	}
	if o.min < c.min {
		c.min = o.min
	}
}

// String returns a textual representation of this counter
func (c *ColumnStatCounter) String() string {
	return fmt.Sprintf("(field: %s, counters: (count: %d, mean: %f, stdev: %f, max: %f, min: %f))",
		c.col, c.count, c.Mean(), c.StdDev(), c.Max(), c.Min())
}

// FrameStats aggregates ColumnStatCounters for an ordered set of columns
// across the tabular blocks of a Frame. It implements Accumulator.
type FrameStats struct {
	columns  []string
	counters map[string]*ColumnStatCounter
}

// CreateFrameStats produces an empty FrameStats over the given columns
func CreateFrameStats(columns ...string) *FrameStats {
	counters := make(map[string]*ColumnStatCounter, len(columns))
	for _, col := range columns {
		counters[col] = &ColumnStatCounter{col: col}
	}
	return &FrameStats{columns: columns, counters: counters}
}

// Columns returns the column labels this FrameStats aggregates, in request order
func (fs *FrameStats) Columns() []string {
	return fs.columns
}

// Column returns the counter for a single column
func (fs *FrameStats) Column(name string) (*ColumnStatCounter, error) {
	c, ok := fs.counters[name]
	if !ok {
		return nil, fmt.Errorf("No statistics were computed for column %s", name)
	}
	return c, nil
}

// AccumulateBlock folds one tabular block into this FrameStats. Every
// requested column must exist in the block; the tabular engine's label
// lookup error is returned as-is otherwise. Nil cells are skipped.
func (fs *FrameStats) AccumulateBlock(b *dataframe.DataFrame) error {
	for _, col := range fs.columns {
		idx, err := b.NameToColumn(col)
		if err != nil {
			return err
		}
		s := b.Series[idx]
		counter := fs.counters[col]
		numRows := s.NRows()
		for r := 0; r < numRows; r++ {
			v := s.Value(r)
			if v == nil {
				continue
			}
			f, err := cellToFloat64(col, v)
			if err != nil {
				return err
			}
			counter.accumulate(f)
		}
	}
	return nil
}

// Merge merges another FrameStats into this one
func (fs *FrameStats) Merge(o Accumulator) error {
	ofs, ok := o.(*FrameStats)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a FrameStats Accumulator")
	}
	for _, col := range fs.columns {
		oc, ok := ofs.counters[col]
		if !ok {
			return fmt.Errorf("Incoming accumulator is missing statistics for column %s", col)
		}
		fs.counters[col].merge(oc)
	}
	return nil
}

type colStatData struct {
	Col   string
	Count int64
	Mean  float64
	M2    float64
	Max   float64
	Min   float64
}

type frameStatsData struct {
	Columns  []string
	Counters []colStatData
}

// ToBytes serializes this FrameStats
func (fs *FrameStats) ToBytes() ([]byte, error) {
	data := frameStatsData{Columns: fs.columns}
	for _, col := range fs.columns {
		c := fs.counters[col]
		data.Counters = append(data.Counters, colStatData{
			Col: c.col, Count: c.count, Mean: c.mean, M2: c.m2, Max: c.max, Min: c.min,
		})
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes produces a new FrameStats from serialized data
func (fs *FrameStats) FromBytes(buf []byte) (Accumulator, error) {
	var data frameStatsData
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&data); err != nil {
		return nil, err
	}
	next := CreateFrameStats(data.Columns...)
	for _, c := range data.Counters {
		next.counters[c.Col] = &ColumnStatCounter{
			col: c.Col, count: c.Count, mean: c.Mean, m2: c.M2, max: c.Max, min: c.Min,
		}
	}
	return next, nil
}

// String returns a textual representation of every counter in this FrameStats
func (fs *FrameStats) String() string {
	parts := make([]string, len(fs.columns))
	for i, col := range fs.columns {
		parts[i] = fs.counters[col].String()
	}
	return strings.Join(parts, ", ")
}

func cellToFloat64(col string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, errors.NotNumericError{Column: col, Value: v}
}
