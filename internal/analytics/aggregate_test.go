package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesSortsChronologicallyAndComputesMean(t *testing.T) {
	sums := newOrderedSums()
	sums.Add("2024-01-03", 300)
	sums.Add("2024-01-01", 100)
	sums.Add("2024-01-02", 150)
	sums.Add("2024-01-02", 50)

	series := sums.Series()

	require.Len(t, series.Points, 3)
	assert.Equal(t, "2024-01-01", series.Points[0].Date)
	assert.Equal(t, "2024-01-02", series.Points[1].Date)
	assert.Equal(t, 200.0, series.Points[1].Value)
	assert.Equal(t, "2024-01-03", series.Points[2].Date)
	assert.Equal(t, 200.0, series.Mean)
}

func TestSeriesEmpty(t *testing.T) {
	series := newOrderedSums().Series()

	assert.Empty(t, series.Points)
	assert.Equal(t, 0.0, series.Mean)
}

func TestRankedSortsDescendingWithFirstSeenTieOrder(t *testing.T) {
	sums := newOrderedSums()
	sums.Add("b", 5)
	sums.Add("a", 5)
	sums.Add("c", 9)

	identity := func(key string) (string, bool) { return key, true }
	ranked := sums.Ranked(identity)

	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Name)
	assert.Equal(t, "b", ranked[1].Name)
	assert.Equal(t, "a", ranked[2].Name)
}

func TestRankedTruncatesToTopTen(t *testing.T) {
	sums := newOrderedSums()
	for i := 0; i < 12; i++ {
		sums.Add(fmt.Sprintf("key-%02d", i), float64(i))
	}

	identity := func(key string) (string, bool) { return key, true }
	ranked := sums.Ranked(identity)

	require.Len(t, ranked, topLimit)
	assert.Equal(t, "key-11", ranked[0].Name)
	assert.Equal(t, 11.0, ranked[0].Value)
	assert.Equal(t, 2.0, ranked[topLimit-1].Value)
}

func TestRankedDropsUnresolvedKeys(t *testing.T) {
	sums := newOrderedSums()
	sums.Add("known", 10)
	sums.Add("orphan", 99)

	ranked := sums.Ranked(func(key string) (string, bool) {
		if key == "known" {
			return "Known Product", true
		}
		return "", false
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, "Known Product", ranked[0].Name)
}

func TestLabeledKeepsGroupingOrder(t *testing.T) {
	sums := newOrderedSums()
	sums.Add("r2", 5)
	sums.Add("r1", 50)

	identity := func(key string) (string, bool) { return key, true }
	labeled := sums.Labeled(identity)

	require.Len(t, labeled, 2)
	assert.Equal(t, "r2", labeled[0].Label)
	assert.Equal(t, "r1", labeled[1].Label)
}

func TestDistributionCountsAndShares(t *testing.T) {
	entries := Distribution([]string{"VIP", "Regular", "VIP", "VIP", "Regular"})

	require.Len(t, entries, 2)
	assert.Equal(t, "VIP", entries[0].Label)
	assert.Equal(t, 3, entries[0].Count)
	assert.InDelta(t, 0.6, entries[0].Share, 1e-9)
	assert.Equal(t, "Regular", entries[1].Label)
	assert.Equal(t, 2, entries[1].Count)
	assert.InDelta(t, 0.4, entries[1].Share, 1e-9)
}

func TestDistributionEmpty(t *testing.T) {
	assert.Empty(t, Distribution(nil))
}

func TestMeanOrZero(t *testing.T) {
	assert.Equal(t, 0.0, meanOrZero(100, 0))
	assert.Equal(t, 50.0, meanOrZero(100, 2))
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{10, 20, 30, 40}

	r := Pearson(xs, ys)
	require.NotNil(t, r)
	assert.InDelta(t, 1.0, *r, 1e-9)

	neg := Pearson(xs, []float64{40, 30, 20, 10})
	require.NotNil(t, neg)
	assert.InDelta(t, -1.0, *neg, 1e-9)
}

func TestPearsonUndefinedCases(t *testing.T) {
	assert.Nil(t, Pearson([]float64{1}, []float64{2}))
	assert.Nil(t, Pearson([]float64{1, 2}, []float64{3}))
	assert.Nil(t, Pearson([]float64{5, 5, 5}, []float64{1, 2, 3}))
	assert.Nil(t, Pearson(nil, nil))
}

func TestHolidayLift(t *testing.T) {
	assert.InDelta(t, 10.0, HolidayLift(110, 100), 1e-9)
	assert.InDelta(t, -25.0, HolidayLift(75, 100), 1e-9)
	assert.Equal(t, 0.0, HolidayLift(110, 0))
}
