package stats

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysToFestival(t *testing.T) {
	festival := time.Date(2027, time.June, 18, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 245, DaysToFestival(testNow, festival, time.UTC))
	assert.Equal(t, 0, DaysToFestival(festival.Add(20*time.Hour), festival, time.UTC))
	assert.Equal(t, -2, DaysToFestival(festival.AddDate(0, 0, 2), festival, time.UTC))
}

func TestRequiredDailyRate(t *testing.T) {
	tests := []struct {
		name string
		gap  int
		days int
		want int
	}{
		{"exact division", 300, 30, 10},
		{"rounds up", 301, 30, 11},
		{"target met", 0, 30, 0},
		{"target exceeded", -50, 30, 0},
		{"festival today", 300, 0, 0},
		{"festival passed", 300, -4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiredDailyRate(tt.gap, tt.days))
		})
	}
}

func TestSalesTrend(t *testing.T) {
	assert.InDelta(t, 50.0, SalesTrend(15, 10), 0.0001)
	assert.InDelta(t, -100.0, SalesTrend(0, 4), 0.0001)
	assert.Zero(t, SalesTrend(12, 0))
}

func TestTrend_UsesYesterdayAndSevenDaysEndingYesterday(t *testing.T) {
	series := make([]DailyPoint, 30)
	for i := 22; i <= 28; i++ {
		series[i].Sales = 10
	}
	series[28].Sales = 17
	series[29].Sales = 500

	lastDay, avg := Trend(series)

	assert.Equal(t, 17, lastDay)
	assert.InDelta(t, 11.0, avg, 0.0001)
	assert.InDelta(t, 54.5454, SalesTrend(lastDay, avg), 0.001)
}

func TestTrend_ShortSeries(t *testing.T) {
	lastDay, avg := Trend(nil)
	assert.Zero(t, lastDay)
	assert.Zero(t, avg)

	lastDay, avg = Trend([]DailyPoint{{Sales: 4}})
	assert.Equal(t, 4, lastDay)
	assert.InDelta(t, 4.0, avg, 0.0001)

	lastDay, avg = Trend([]DailyPoint{{Sales: 2}, {Sales: 6}, {Sales: 9}})
	assert.Equal(t, 6, lastDay)
	assert.InDelta(t, 4.0, avg, 0.0001)
}

func TestSeedFor_IsStable(t *testing.T) {
	assert.Equal(t, SeedFor("demo-2027"), SeedFor("demo-2027"))
	assert.NotEqual(t, SeedFor("demo-2027"), SeedFor("demo-2028"))
}

func TestSyntheticSeries_EndsAtTotal(t *testing.T) {
	price := decimal.RequireFromString("64.76")

	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		series := SyntheticSeries(14850, 30, testNow, time.UTC, price, rng)

		require.Len(t, series, 30)
		assert.Equal(t, 14850, series[29].Cumulative, "seed %d", seed)
		assert.Equal(t, "2026-10-16", series[29].Date)

		running := 0
		for _, p := range series {
			assert.GreaterOrEqual(t, p.Sales, 0)
			running += p.Sales
			assert.Equal(t, running, p.Cumulative)
		}
	}
}

func TestSyntheticSeries_SameSeedSameSeries(t *testing.T) {
	a := SyntheticSeries(5000, 30, testNow, time.UTC, decimal.NewFromInt(50), rand.New(rand.NewPCG(7, 7)))
	b := SyntheticSeries(5000, 30, testNow, time.UTC, decimal.NewFromInt(50), rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, a, b)
}

func TestSyntheticSeries_RevenueFollowsAveragePrice(t *testing.T) {
	series := SyntheticSeries(300, 10, testNow, time.UTC, decimal.RequireFromString("20.50"), rand.New(rand.NewPCG(3, 3)))

	for _, p := range series {
		want := decimal.RequireFromString("20.50").Mul(decimal.NewFromInt(int64(p.Sales)))
		assert.True(t, want.Equal(p.Revenue), p.Date)
	}
}

func TestSyntheticSeries_ZeroTotal(t *testing.T) {
	series := SyntheticSeries(0, 5, testNow, time.UTC, decimal.Zero, rand.New(rand.NewPCG(1, 1)))

	require.Len(t, series, 5)
	for _, p := range series {
		assert.Zero(t, p.Sales)
		assert.Zero(t, p.Cumulative)
	}
}

func TestApportion_SumsExactly(t *testing.T) {
	parts := apportion([]float64{1, 1, 1}, 3, 100)

	assert.Equal(t, 100, parts[0]+parts[1]+parts[2])
	for _, p := range parts {
		assert.True(t, p == 33 || p == 34)
	}

	assert.Equal(t, []int{0, 0}, apportion([]float64{0, 0}, 0, 10))
}
