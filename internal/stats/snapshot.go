package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source describes where the figures of a snapshot came from
type Source string

const (
	// SourceLive means the snapshot was computed from confirmed tickets.
	SourceLive Source = "live"
	// SourceDemo means a demo event id was requested.
	SourceDemo Source = "demo"
	// SourceEmpty means the event exists but has no confirmed tickets yet.
	SourceEmpty Source = "empty"
	// SourceFallback means the live read failed and fixture figures were substituted.
	SourceFallback Source = "fallback"
)

// Snapshot is one immutable statistics result for one event at one point in time
type Snapshot struct {
	EventID     string    `json:"event_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalSold      int             `json:"total_sold"`
	GrossRevenue   decimal.Decimal `json:"gross_revenue"`
	Capacity       int             `json:"capacity"`
	OccupancyRate  float64         `json:"occupancy_rate"`
	AvgTicketPrice decimal.Decimal `json:"avg_ticket_price"`

	TargetSales    int     `json:"target_sales"`
	SalesGap       int     `json:"sales_gap"`
	TargetProgress float64 `json:"target_progress"`

	DaysToFestival    int `json:"days_to_festival"`
	RequiredDailyRate int `json:"required_daily_rate"`

	LastDaySales    int     `json:"last_day_sales"`
	SevenDayAverage float64 `json:"seven_day_average"`
	SalesTrend      float64 `json:"sales_trend"`

	ByProvider []GroupStat   `json:"by_provider"`
	ByZone     []GroupStat   `json:"by_zone"`
	ByChannel  []ChannelStat `json:"by_channel"`
	Daily      []DailyPoint  `json:"daily"`

	Demographics Demographics `json:"demographics"`

	Source          Source `json:"source"`
	IsDemo          bool   `json:"is_demo"`
	HasRealData     bool   `json:"has_real_data"`
	FallbackReason  string `json:"fallback_reason,omitempty"`
	RejectedRecords int    `json:"rejected_records"`
}

// GroupStat is the sales of one provider or zone
type GroupStat struct {
	Key       string          `json:"key"`
	Sold      int             `json:"sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	Capacity  *int            `json:"capacity"`
	Occupancy float64         `json:"occupancy"`
}

// ChannelStat is a GroupStat with its share of total sales
type ChannelStat struct {
	GroupStat
	Percentage float64 `json:"percentage"`
}

// DailyPoint is one calendar day of the sales series
type DailyPoint struct {
	Date       string          `json:"date"`
	Sales      int             `json:"sales"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cumulative int             `json:"cumulative"`
}

// Demographics summarises buyer data
type Demographics struct {
	AgeBrackets      []BracketStat  `json:"age_brackets"`
	AgeKnown         int            `json:"age_known"`
	Provinces        []LocationStat `json:"provinces"`
	Cities           []LocationStat `json:"cities"`
	WithEmail        int            `json:"with_email"`
	WithPhone        int            `json:"with_phone"`
	MarketingConsent int            `json:"marketing_consent"`
}

// BracketStat is the number of buyers in one age bracket
type BracketStat struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// LocationStat is the number of buyers from one province or city
type LocationStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// percent returns part/whole*100, or 0 when whole is not positive
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
