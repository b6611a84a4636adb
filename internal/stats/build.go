package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// Build computes a live snapshot from parsed confirmed tickets.
// It never fails; zero denominators resolve to zero.
func Build(eventID string, tickets []*domain.Ticket, caps Capacities, now time.Time, cfg Config) *Snapshot {
	revenue := decimal.Zero
	for _, t := range tickets {
		revenue = revenue.Add(t.Price)
	}

	capacity := caps.TotalZoneCapacity()
	if capacity == 0 {
		capacity = cfg.Capacity
	}

	s := &Snapshot{
		EventID:      eventID,
		GeneratedAt:  now,
		TotalSold:    len(tickets),
		GrossRevenue: revenue,
		Capacity:     capacity,
		Source:       SourceLive,
		HasRealData:  len(tickets) > 0,
	}
	s.ByProvider, s.ByZone, s.ByChannel = Breakdowns(tickets, caps)
	s.Daily = DailySeries(tickets, now, cfg.windowDays(), cfg.location())
	s.Demographics = BuyerDemographics(tickets, cfg.topLocations())

	applyTargets(s, cfg.TargetSales, now, cfg)
	return s
}

// applyTargets fills the KPIs derived from totals, the sales target and the daily series
func applyTargets(s *Snapshot, target int, now time.Time, cfg Config) {
	s.OccupancyRate = percent(s.TotalSold, s.Capacity)
	s.AvgTicketPrice = decimal.Zero
	if s.TotalSold > 0 {
		s.AvgTicketPrice = s.GrossRevenue.Div(decimal.NewFromInt(int64(s.TotalSold))).Round(2)
	}

	s.TargetSales = target
	s.SalesGap = target - s.TotalSold
	s.TargetProgress = percent(s.TotalSold, target)

	s.DaysToFestival = DaysToFestival(now, cfg.FestivalDate, cfg.location())
	s.RequiredDailyRate = RequiredDailyRate(s.SalesGap, s.DaysToFestival)

	s.LastDaySales, s.SevenDayAverage = Trend(s.Daily)
	s.SalesTrend = SalesTrend(s.LastDaySales, s.SevenDayAverage)
}
