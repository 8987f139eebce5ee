package csv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCSV = `name,score
tea,10
water,20
coffee,30
`

func TestCreateFrame(t *testing.T) {
	ctx := context.Background()
	frame, err := CreateFrame(ctx, strings.NewReader(testCSV), &Conf{PartitionSize: 2})
	require.Nil(t, err)
	require.Equal(t, 2, frame.Collection().NumPartitions())

	res, err := frame.Collect(ctx)
	require.Nil(t, err)
	require.Equal(t, 3, res.NRows())
	require.Equal(t, 2, len(res.Series))

	stats, err := frame.ColumnStats(ctx, "score")
	require.Nil(t, err)
	counter, err := stats.Column("score")
	require.Nil(t, err)
	require.EqualValues(t, 3, counter.Count())
	require.InDelta(t, 20.0, counter.Mean(), 1e-9)
	require.InDelta(t, 8.164965809, counter.StdDev(), 1e-9)
}

func TestCreateFrameEmptyInput(t *testing.T) {
	frame, err := CreateFrame(context.Background(), strings.NewReader("name,score\n"), nil)
	require.Nil(t, err)
	require.Equal(t, 0, frame.Collection().NumPartitions())
}
