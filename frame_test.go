package gridframe_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/go-gridframe/gridframe"
	"github.com/go-gridframe/gridframe/datasource/memory"
	gerrors "github.com/go-gridframe/gridframe/errors"
	"github.com/go-gridframe/gridframe/internal/collection"
	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/stretchr/testify/require"
)

func createMoodBlock(t *testing.T) *dataframe.DataFrame {
	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("magic", nil, "tea", "water", "coffee"),
		dataframe.NewSeriesString("thing", nil, "happy", "sad", "happiest"),
	)
}

func createNumberBlock(t *testing.T, a []string, b []int64) *dataframe.DataFrame {
	avals := make([]interface{}, len(a))
	for i, v := range a {
		avals[i] = v
	}
	bvals := make([]interface{}, len(b))
	for i, v := range b {
		bvals[i] = v
	}
	return dataframe.NewDataFrame(
		dataframe.NewSeriesString("a", nil, avals...),
		dataframe.NewSeriesInt64("b", nil, bvals...),
	)
}

// sortedRows renders every row of a block as a string, sorted, so that
// results may be compared without depending on reduction order
func sortedRows(t *testing.T, b *dataframe.DataFrame) []string {
	numRows := b.NRows()
	rows := make([]string, numRows)
	for r := 0; r < numRows; r++ {
		vals := make([]interface{}, len(b.Series))
		for c, s := range b.Series {
			vals[c] = s.Value(r)
		}
		rows[r] = fmt.Sprintf("%v", vals)
	}
	sort.Strings(rows)
	return rows
}

func TestColumnThenCollect(t *testing.T) {
	frame := memory.CreateFrame([]*dataframe.DataFrame{createMoodBlock(t)}, nil)
	res, err := frame.Column("thing").Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, 1, len(res.Series))
	require.Equal(t, "thing", res.Series[0].Name())
	require.Equal(t, []string{"[happiest]", "[happy]", "[sad]"}, sortedRows(t, res))
}

func TestApplyMapPandaPrefix(t *testing.T) {
	frame := memory.CreateFrame([]*dataframe.DataFrame{createMoodBlock(t)}, nil)
	res, err := frame.ApplyMap(func(val interface{}) (interface{}, error) {
		return "panda" + val.(string), nil
	}, nil).Collect(context.Background())
	require.Nil(t, err)
	numRows := res.NRows()
	require.Equal(t, 3, numRows)
	for _, s := range res.Series {
		for r := 0; r < numRows; r++ {
			require.Contains(t, s.Value(r), "panda")
		}
	}
}

func TestApplyMapThenCollectMatchesDirect(t *testing.T) {
	// the same logical input, as one block and as three single-row blocks
	whole := createNumberBlock(t, []string{"magic", "ninja", "coffee"}, []int64{10, 20, 30})
	split := []*dataframe.DataFrame{
		createNumberBlock(t, []string{"magic"}, []int64{10}),
		createNumberBlock(t, []string{"ninja"}, []int64{20}),
		createNumberBlock(t, []string{"coffee"}, []int64{30}),
	}
	double := func(val interface{}) (interface{}, error) {
		if n, ok := val.(int64); ok {
			return n * 2, nil
		}
		return val, nil
	}
	direct, err := memory.CreateFrame([]*dataframe.DataFrame{whole}, nil).
		ApplyMap(double, nil).Collect(context.Background())
	require.Nil(t, err)
	distributed, err := memory.CreateFrame(split, nil).
		ApplyMap(double, nil).Collect(context.Background())
	require.Nil(t, err)
	require.Equal(t, sortedRows(t, direct), sortedRows(t, distributed))
}

func TestCollectRepartitioningInvariance(t *testing.T) {
	blocks := []*dataframe.DataFrame{
		createNumberBlock(t, []string{"magic"}, []int64{10}),
		createNumberBlock(t, []string{"ninja"}, []int64{20}),
		createNumberBlock(t, []string{"coffee"}, []int64{30}),
		createNumberBlock(t, []string{"tea"}, []int64{40}),
	}
	var collected [][]string
	for _, numPartitions := range []int{1, 2, 4} {
		res, err := memory.CreateFrame(blocks, &memory.Conf{NumPartitions: numPartitions}).
			Collect(context.Background())
		require.Nil(t, err)
		collected = append(collected, sortedRows(t, res))
	}
	require.Equal(t, collected[0], collected[1])
	require.Equal(t, collected[0], collected[2])
}

func TestCollectEmptyCollection(t *testing.T) {
	frame := memory.CreateFrame(nil, nil)
	_, err := frame.Collect(context.Background())
	require.NotNil(t, err)
	require.IsType(t, gerrors.EmptyCollectionError{}, err)
}

func TestCollectIncompatibleSchemas(t *testing.T) {
	blocks := []*dataframe.DataFrame{
		createMoodBlock(t),
		createNumberBlock(t, []string{"magic"}, []int64{10}),
	}
	_, err := memory.CreateFrame(blocks, nil).Collect(context.Background())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not compatible")
}

func TestCollectMixedColumnTypes(t *testing.T) {
	// blocks sharing a label but not a series type must fail the action in
	// either append order, never coerce values or escape as an engine panic
	numeric := dataframe.NewDataFrame(dataframe.NewSeriesInt64("val", nil, 10))
	text := dataframe.NewDataFrame(dataframe.NewSeriesString("val", nil, "ten"))
	for _, blocks := range [][]*dataframe.DataFrame{{numeric, text}, {text, numeric}} {
		_, err := memory.CreateFrame(blocks, &memory.Conf{NumPartitions: 1}).
			Collect(context.Background())
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "not compatible")
	}
}

func TestColumnMissingLabel(t *testing.T) {
	frame := memory.CreateFrame([]*dataframe.DataFrame{createMoodBlock(t)}, nil)
	_, err := frame.Column("no_such_column").Collect(context.Background())
	require.NotNil(t, err)
}

func TestValidatedFromCollection(t *testing.T) {
	ctx := context.Background()

	valid := memory.CreateCollection([]*dataframe.DataFrame{createMoodBlock(t)}, nil)
	frame, err := gridframe.ValidatedFromCollection(ctx, valid)
	require.Nil(t, err)
	require.NotNil(t, frame)

	invalid := collection.Create([][]interface{}{{"not a block"}}, nil)
	_, err = gridframe.ValidatedFromCollection(ctx, invalid)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not a tabular block")

	// an empty handle has nothing to violate
	empty := memory.CreateCollection(nil, nil)
	frame, err = gridframe.ValidatedFromCollection(ctx, empty)
	require.Nil(t, err)
	require.NotNil(t, frame)
}

func TestFromCollectionIsUnchecked(t *testing.T) {
	// wrapping never inspects the handle; the violation surfaces at action time
	frame := gridframe.FromCollection(collection.Create([][]interface{}{{"not a block"}}, nil))
	require.NotNil(t, frame)
	_, err := frame.Collect(context.Background())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not a tabular block")
}

func TestColumnStatsScenario(t *testing.T) {
	frame := memory.CreateFrame([]*dataframe.DataFrame{
		createNumberBlock(t, []string{"magic", "ninja", "coffee"}, []int64{10, 20, 30}),
	}, nil)
	stats, err := frame.ColumnStats(context.Background(), "b")
	require.Nil(t, err)
	counter, err := stats.Column("b")
	require.Nil(t, err)
	require.EqualValues(t, 3, counter.Count())
	require.InDelta(t, 20.0, counter.Mean(), 1e-9)
	require.InDelta(t, 8.164965809, counter.StdDev(), 1e-9)
	require.InDelta(t, 30.0, counter.Max(), 1e-9)
	require.InDelta(t, 10.0, counter.Min(), 1e-9)
}

func TestColumnStatsEmptyCollection(t *testing.T) {
	// partitions which exist but hold no blocks yield no statistics, matching
	// Collect over the same frame
	frame := memory.CreateFrame(nil, &memory.Conf{NumPartitions: 2})
	_, err := frame.ColumnStats(context.Background(), "x")
	require.NotNil(t, err)
	require.IsType(t, gerrors.EmptyCollectionError{}, err)
}

func TestColumnStatsNoColumns(t *testing.T) {
	frame := memory.CreateFrame([]*dataframe.DataFrame{createMoodBlock(t)}, nil)
	_, err := frame.ColumnStats(context.Background())
	require.NotNil(t, err)
	require.IsType(t, gerrors.NoColumnsError{}, err)
}

func TestColumnStatsMissingColumn(t *testing.T) {
	frame := memory.CreateFrame([]*dataframe.DataFrame{createMoodBlock(t)}, nil)
	_, err := frame.ColumnStats(context.Background(), "no_such_column")
	require.NotNil(t, err)
}

func TestColumnStatsAcrossPartitions(t *testing.T) {
	// partition counters must merge into the same result as a single block
	blocks := []*dataframe.DataFrame{
		createNumberBlock(t, []string{"magic"}, []int64{10}),
		createNumberBlock(t, []string{"ninja"}, []int64{20}),
		createNumberBlock(t, []string{"coffee"}, []int64{30}),
	}
	stats, err := memory.CreateFrame(blocks, nil).ColumnStats(context.Background(), "b")
	require.Nil(t, err)
	counter, err := stats.Column("b")
	require.Nil(t, err)
	require.EqualValues(t, 3, counter.Count())
	require.InDelta(t, 20.0, counter.Mean(), 1e-9)
	require.InDelta(t, 8.164965809, counter.StdDev(), 1e-9)
}
