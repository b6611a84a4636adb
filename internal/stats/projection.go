package stats

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	trendDays         = 7
	weekendMultiplier = 1.35
	maxVariance       = 0.15
)

// DaysToFestival is the number of calendar days from now until the festival date.
// It is negative once the festival has started.
func DaysToFestival(now, festival time.Time, loc *time.Location) int {
	a := now.In(loc)
	b := festival.In(loc)
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// RequiredDailyRate is the number of tickets per day needed to close the gap.
// It is zero when the target is met or the festival date has passed.
func RequiredDailyRate(salesGap, daysToFestival int) int {
	if salesGap <= 0 || daysToFestival <= 0 {
		return 0
	}
	return (salesGap + daysToFestival - 1) / daysToFestival
}

// SalesTrend is the percentage change of lastDay against the average, zero when the average is zero
func SalesTrend(lastDay int, average float64) float64 {
	if average == 0 {
		return 0
	}
	return (float64(lastDay) - average) / average * 100
}

// Trend reads yesterday's sales and the average of the seven days ending yesterday from a series.
// With a single-day series the only day is used.
func Trend(series []DailyPoint) (lastDay int, average float64) {
	if len(series) == 0 {
		return 0, 0
	}
	last := len(series) - 1
	if len(series) > 1 {
		last = len(series) - 2
	}
	first := last - trendDays + 1
	if first < 0 {
		first = 0
	}
	sum := 0
	for _, p := range series[first : last+1] {
		sum += p.Sales
	}
	return series[last].Sales, float64(sum) / float64(last-first+1)
}

// SeedFor derives a stable random seed from an event id so a demo history does not change between refreshes
func SeedFor(eventID string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(eventID))
	return h.Sum64()
}

// SyntheticSeries fabricates a plausible sales history of the given length ending on the day of end.
// Daily sales follow an accelerating curve with busier weekends and bounded noise, and are rescaled
// so the cumulative total equals total exactly. Revenue is sales times avgPrice.
func SyntheticSeries(total, days int, end time.Time, loc *time.Location, avgPrice decimal.Decimal, rng *rand.Rand) []DailyPoint {
	dates := windowDates(end, days, loc)
	weights := make([]float64, days)
	sum := 0.0
	for i, d := range dates {
		progress := float64(i+1) / float64(days)
		w := 0.35 + 1.65*progress*progress
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			w *= weekendMultiplier
		}
		w *= 1 + (rng.Float64()*2-1)*maxVariance
		weights[i] = w
		sum += w
	}

	sales := apportion(weights, sum, total)

	series := make([]DailyPoint, days)
	for i, d := range dates {
		series[i] = DailyPoint{
			Date:    d.Format(dateLayout),
			Sales:   sales[i],
			Revenue: avgPrice.Mul(decimal.NewFromInt(int64(sales[i]))).Round(2),
		}
	}
	accumulate(series)
	return series
}

// apportion splits total across weights with the largest remainder method so the parts sum to total
func apportion(weights []float64, sum float64, total int) []int {
	parts := make([]int, len(weights))
	if total <= 0 || sum <= 0 {
		return parts
	}

	type remainder struct {
		index int
		frac  float64
	}
	rems := make([]remainder, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w / sum * float64(total)
		whole := math.Floor(exact)
		parts[i] = int(whole)
		assigned += parts[i]
		rems[i] = remainder{index: i, frac: exact - whole}
	}

	sort.SliceStable(rems, func(i, j int) bool {
		return rems[i].frac > rems[j].frac
	})
	for k := 0; assigned < total; k++ {
		parts[rems[k%len(rems)].index]++
		assigned++
	}
	return parts
}
