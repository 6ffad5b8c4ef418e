package timeseries

import (
	"sort"
	"time"
)

// ResampleMonthly groups observations by calendar month and returns one
// observation per month holding the arithmetic mean of that month's values,
// ordered by month ascending. Months with no source observations are omitted,
// never interpolated, so the result may contain gaps when the source does.
// Returns ErrEmptyInput when the source series is empty.
func ResampleMonthly(src Series) (Series, error) {
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[int64]*bucket)
	for _, obs := range src {
		key := MonthStart(obs.Time).Unix()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += obs.Value
		b.count++
	}

	keys := make([]int64, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	monthly := make(Series, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		monthly = append(monthly, Observation{
			Time:  MonthStart(time.Unix(key, 0)),
			Value: b.sum / float64(b.count),
		})
	}
	return monthly, nil
}
