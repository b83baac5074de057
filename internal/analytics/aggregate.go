package analytics

import (
	"math"
	"sort"

	"sales-dashboard/internal/models"
)

const topLimit = 10

// orderedSums accumulates per-key sums while preserving first-seen key
// order. Ranking ties fall back to this order, which keeps exports
// reproducible run to run.
type orderedSums struct {
	order []string
	sums  map[string]float64
}

func newOrderedSums() *orderedSums {
	return &orderedSums{sums: make(map[string]float64)}
}

func (o *orderedSums) Add(key string, value float64) {
	if _, ok := o.sums[key]; !ok {
		o.order = append(o.order, key)
	}
	o.sums[key] += value
}

func (o *orderedSums) Len() int { return len(o.order) }

// Series returns (key, sum) pairs sorted ascending by key. Keys are
// ISO-formatted dates, so lexicographic order is chronological.
func (o *orderedSums) Series() models.TrendSeries {
	keys := make([]string, len(o.order))
	copy(keys, o.order)
	sort.Strings(keys)

	series := models.TrendSeries{Points: make([]models.TrendPoint, 0, len(keys))}
	var total float64
	for _, k := range keys {
		v := o.sums[k]
		series.Points = append(series.Points, models.TrendPoint{Date: k, Value: v})
		total += v
	}
	series.Mean = meanOrZero(total, len(keys))
	return series
}

// Ranked resolves display names through name (an inner join: keys the
// resolver rejects drop), sorts descending by summed value with a stable
// sort, and truncates to the top 10.
func (o *orderedSums) Ranked(name func(key string) (string, bool)) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, len(o.order))
	for _, key := range o.order {
		display, ok := name(key)
		if !ok {
			continue
		}
		entries = append(entries, models.RankingEntry{Name: display, Value: o.sums[key]})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	if len(entries) > topLimit {
		entries = entries[:topLimit]
	}
	return entries
}

// Labeled resolves names like Ranked but keeps grouping order and does
// not truncate — the shape used for the region/type bar charts.
func (o *orderedSums) Labeled(name func(key string) (string, bool)) []models.LabeledValue {
	values := make([]models.LabeledValue, 0, len(o.order))
	for _, key := range o.order {
		display, ok := name(key)
		if !ok {
			continue
		}
		values = append(values, models.LabeledValue{Label: display, Value: o.sums[key]})
	}
	return values
}

// meanOrZero is the guarded mean the whole dashboard relies on: an empty
// group yields 0, never a division error.
func meanOrZero(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Distribution counts occurrences per label in first-seen order and
// derives each label's share of the total.
func Distribution(labels []string) []models.DistributionEntry {
	counts := make(map[string]int, len(labels))
	var order []string
	for _, label := range labels {
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}

	entries := make([]models.DistributionEntry, 0, len(order))
	for _, label := range order {
		entries = append(entries, models.DistributionEntry{
			Label: label,
			Count: counts[label],
			Share: meanOrZero(float64(counts[label]), len(labels)),
		})
	}
	return entries
}

// Pearson returns the correlation coefficient of two paired series, or
// nil when it is undefined: fewer than two points, mismatched lengths,
// or zero variance on either side.
func Pearson(xs, ys []float64) *float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return nil
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, syy, sxy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return nil
	}

	r := sxy / math.Sqrt(sxx*syy)
	return &r
}

// HolidayLift computes the percentage lift of holiday over non-holiday
// means. A zero non-holiday mean yields 0, never Inf or NaN, so the
// value always survives JSON encoding.
func HolidayLift(holidayMean, nonHolidayMean float64) float64 {
	if nonHolidayMean == 0 {
		return 0
	}
	return (holidayMean/nonHolidayMean - 1) * 100
}
