package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// Labels used when a grouping field is empty
const (
	UnknownProvider = "unknown"
	NoZone          = "no zone"
	NoChannel       = "no channel"
)

const dateLayout = "2006-01-02"

// Capacities holds the capacity lookups for one event, keyed by provider or zone name
type Capacities struct {
	Providers map[string]int
	Zones     map[string]int
}

// NewCapacities indexes capacity rows by name. Later rows win on duplicates.
func NewCapacities(providers []domain.ProviderCapacity, zones []domain.ZoneCapacity) Capacities {
	c := Capacities{
		Providers: make(map[string]int, len(providers)),
		Zones:     make(map[string]int, len(zones)),
	}
	for _, p := range providers {
		c.Providers[p.Provider] = p.Capacity
	}
	for _, z := range zones {
		c.Zones[z.Zone] = z.Capacity
	}
	return c
}

// TotalZoneCapacity sums all zone capacities
func (c Capacities) TotalZoneCapacity() int {
	total := 0
	for _, v := range c.Zones {
		total += v
	}
	return total
}

type groupAcc struct {
	key     string
	sold    int
	revenue decimal.Decimal
}

// grouper accumulates tickets per key, remembering first-encounter order
type grouper struct {
	index  map[string]int
	groups []*groupAcc
}

func newGrouper() *grouper {
	return &grouper{index: make(map[string]int)}
}

func (g *grouper) add(key string, price decimal.Decimal) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, &groupAcc{key: key})
	}
	g.groups[i].sold++
	g.groups[i].revenue = g.groups[i].revenue.Add(price)
}

// stats returns the groups sorted by sold count descending, ties in encounter order
func (g *grouper) stats(capacities map[string]int) []GroupStat {
	out := make([]GroupStat, 0, len(g.groups))
	for _, acc := range g.groups {
		out = append(out, newGroupStat(acc.key, acc.sold, acc.revenue, capacities))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sold > out[j].Sold
	})
	return out
}

func newGroupStat(key string, sold int, revenue decimal.Decimal, capacities map[string]int) GroupStat {
	gs := GroupStat{Key: key, Sold: sold, Revenue: revenue}
	if c, ok := capacities[key]; ok && c > 0 {
		capacity := c
		gs.Capacity = &capacity
		gs.Occupancy = percent(sold, capacity)
	}
	return gs
}

func labelOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// withChannelShare attaches each channel's share of total
func withChannelShare(groups []GroupStat, total int) []ChannelStat {
	out := make([]ChannelStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, ChannelStat{GroupStat: g, Percentage: percent(g.Sold, total)})
	}
	return out
}

// Breakdowns groups tickets by provider, zone and channel.
// Every ticket lands in exactly one group per dimension.
func Breakdowns(tickets []*domain.Ticket, caps Capacities) (providers, zones []GroupStat, channels []ChannelStat) {
	byProvider := newGrouper()
	byZone := newGrouper()
	byChannel := newGrouper()

	for _, t := range tickets {
		byProvider.add(labelOr(t.Provider, UnknownProvider), t.Price)
		byZone.add(labelOr(t.Zone, NoZone), t.Price)
		byChannel.add(labelOr(t.Channel, NoChannel), t.Price)
	}

	return byProvider.stats(caps.Providers),
		byZone.stats(caps.Zones),
		withChannelShare(byChannel.stats(nil), len(tickets))
}

// windowDates returns the calendar days of a window of n days ending on the day of now
func windowDates(now time.Time, n int, loc *time.Location) []time.Time {
	local := now.In(loc)
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = time.Date(local.Year(), local.Month(), local.Day()-(n-1-i), 0, 0, 0, 0, loc)
	}
	return dates
}

// DailySeries buckets tickets into the trailing window of calendar days ending today.
// Days without sales are present with zero values; tickets outside the window are ignored.
func DailySeries(tickets []*domain.Ticket, now time.Time, days int, loc *time.Location) []DailyPoint {
	dates := windowDates(now, days, loc)
	series := make([]DailyPoint, len(dates))
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		key := d.Format(dateLayout)
		series[i] = DailyPoint{Date: key, Revenue: decimal.Zero}
		index[key] = i
	}

	for _, t := range tickets {
		i, ok := index[t.SoldAt.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		series[i].Sales++
		series[i].Revenue = series[i].Revenue.Add(t.Price)
	}

	accumulate(series)
	return series
}

func accumulate(series []DailyPoint) {
	running := 0
	for i := range series {
		running += series[i].Sales
		series[i].Cumulative = running
	}
}

// ageBracket describes an inclusive age range; max 0 means unbounded
type ageBracket struct {
	label    string
	min, max int
}

var ageBrackets = []ageBracket{
	{label: "18-21", min: 18, max: 21},
	{label: "22-25", min: 22, max: 25},
	{label: "26-30", min: 26, max: 30},
	{label: "31+", min: 31},
}

func bracketOf(age int) int {
	for i, b := range ageBrackets {
		if age >= b.min && (b.max == 0 || age <= b.max) {
			return i
		}
	}
	return -1
}

type locationCounter struct {
	index  map[string]int
	counts []LocationStat
	total  int
}

func newLocationCounter() *locationCounter {
	return &locationCounter{index: make(map[string]int)}
}

func (c *locationCounter) add(name string) {
	if name == "" {
		return
	}
	i, ok := c.index[name]
	if !ok {
		i = len(c.counts)
		c.index[name] = i
		c.counts = append(c.counts, LocationStat{Name: name})
	}
	c.counts[i].Count++
	c.total++
}

// top returns the n largest locations; percentages are over all buyers with a value
func (c *locationCounter) top(n int) []LocationStat {
	return topLocations(c.counts, c.total, n)
}

func topLocations(counts []LocationStat, total, n int) []LocationStat {
	sorted := make([]LocationStat, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	for i := range sorted {
		sorted[i].Percentage = percent(sorted[i].Count, total)
	}
	return sorted
}

func bracketStats(counts []int) ([]BracketStat, int) {
	known := 0
	for _, c := range counts {
		known += c
	}
	out := make([]BracketStat, len(ageBrackets))
	for i, b := range ageBrackets {
		out[i] = BracketStat{Label: b.label, Count: counts[i], Percentage: percent(counts[i], known)}
	}
	return out, known
}

// BuyerDemographics summarises ages, locations and contact flags.
// Tickets without a bracketable age only drop out of the age figures.
func BuyerDemographics(tickets []*domain.Ticket, topN int) Demographics {
	ageCounts := make([]int, len(ageBrackets))
	provinces := newLocationCounter()
	cities := newLocationCounter()
	var d Demographics

	for _, t := range tickets {
		if t.BuyerAge != nil {
			if b := bracketOf(*t.BuyerAge); b >= 0 {
				ageCounts[b]++
			}
		}
		provinces.add(t.BuyerProvince)
		cities.add(t.BuyerCity)
		if t.HasEmail {
			d.WithEmail++
		}
		if t.HasPhone {
			d.WithPhone++
		}
		if t.MarketingConsent {
			d.MarketingConsent++
		}
	}

	d.AgeBrackets, d.AgeKnown = bracketStats(ageCounts)
	d.Provinces = provinces.top(topN)
	d.Cities = cities.top(topN)
	return d
}
