package stats

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// FixtureGroup is one hand-authored group of the demo dataset
type FixtureGroup struct {
	Key      string
	Sold     int
	Capacity int
	Price    decimal.Decimal
}

// Fixture is the demo dataset shown for demo events and when live data is unavailable
type Fixture struct {
	TotalSold   int
	TargetSales int
	Capacity    int

	// Zones carry prices; provider and channel revenue is apportioned from the zone total.
	Zones     []FixtureGroup
	Providers []FixtureGroup
	Channels  []FixtureGroup

	AgeBrackets      [4]int
	Provinces        []LocationStat
	Cities           []LocationStat
	WithEmail        int
	WithPhone        int
	MarketingConsent int
}

// DemoFixture is the dataset of the sample festival
var DemoFixture = Fixture{
	TotalSold:   14850,
	TargetSales: 18000,
	Capacity:    20000,
	Zones: []FixtureGroup{
		{Key: "General", Sold: 10900, Capacity: 14000, Price: decimal.RequireFromString("49.00")},
		{Key: "Front Stage", Sold: 2300, Capacity: 3500, Price: decimal.RequireFromString("79.00")},
		{Key: "VIP", Sold: 1650, Capacity: 2500, Price: decimal.RequireFromString("149.00")},
	},
	Providers: []FixtureGroup{
		{Key: "Ticketmaster", Sold: 6240, Capacity: 7500},
		{Key: "Entradas.com", Sold: 3980, Capacity: 5000},
		{Key: "Taquilla Oficial", Sold: 2630, Capacity: 3500},
		{Key: "Fever", Sold: 2000, Capacity: 4000},
	},
	Channels: []FixtureGroup{
		{Key: "online", Sold: 10395},
		{Key: "box_office", Sold: 2228},
		{Key: "app", Sold: 2227},
	},
	AgeBrackets: [4]int{3960, 4620, 2904, 1716},
	Provinces: []LocationStat{
		{Name: "Sevilla", Count: 4455},
		{Name: "Madrid", Count: 2228},
		{Name: "Málaga", Count: 1782},
		{Name: "Cádiz", Count: 1485},
		{Name: "Córdoba", Count: 1188},
		{Name: "Huelva", Count: 891},
		{Name: "Granada", Count: 743},
		{Name: "Barcelona", Count: 594},
		{Name: "Valencia", Count: 446},
	},
	Cities: []LocationStat{
		{Name: "Sevilla", Count: 3861},
		{Name: "Madrid", Count: 2079},
		{Name: "Málaga", Count: 1337},
		{Name: "Jerez de la Frontera", Count: 891},
		{Name: "Córdoba", Count: 842},
		{Name: "Dos Hermanas", Count: 668},
		{Name: "Huelva", Count: 594},
		{Name: "Granada", Count: 520},
		{Name: "Cádiz", Count: 446},
	},
	WithEmail:        14107,
	WithPhone:        12623,
	MarketingConsent: 8910,
}

// FixtureSnapshot builds a snapshot from a fixture. The daily series is synthetic and seeded
// from the event id; rng overrides the seed when not nil.
func FixtureSnapshot(eventID string, f Fixture, now time.Time, cfg Config, rng *rand.Rand) *Snapshot {
	if rng == nil {
		seed := SeedFor(eventID)
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	zoneCaps := make(map[string]int, len(f.Zones))
	zones := make([]GroupStat, 0, len(f.Zones))
	gross := decimal.Zero
	for _, z := range f.Zones {
		revenue := z.Price.Mul(decimal.NewFromInt(int64(z.Sold)))
		gross = gross.Add(revenue)
		zoneCaps[z.Key] = z.Capacity
		zones = append(zones, newGroupStat(z.Key, z.Sold, revenue, zoneCaps))
	}

	providerCaps := make(map[string]int, len(f.Providers))
	for _, p := range f.Providers {
		providerCaps[p.Key] = p.Capacity
	}
	providers := splitGroups(f.Providers, gross, providerCaps)
	channels := withChannelShare(splitGroups(f.Channels, gross, nil), f.TotalSold)

	capacity := f.Capacity
	if capacity == 0 {
		capacity = cfg.Capacity
	}

	avgPrice := decimal.Zero
	if f.TotalSold > 0 {
		avgPrice = gross.Div(decimal.NewFromInt(int64(f.TotalSold))).Round(2)
	}

	ageBrackets, ageKnown := bracketStats(f.AgeBrackets[:])
	s := &Snapshot{
		EventID:      eventID,
		GeneratedAt:  now,
		TotalSold:    f.TotalSold,
		GrossRevenue: gross,
		Capacity:     capacity,
		ByProvider:   providers,
		ByZone:       zones,
		ByChannel:    channels,
		Daily:        SyntheticSeries(f.TotalSold, cfg.windowDays(), now, cfg.location(), avgPrice, rng),
		Demographics: Demographics{
			AgeBrackets:      ageBrackets,
			AgeKnown:         ageKnown,
			Provinces:        topLocations(f.Provinces, sumLocations(f.Provinces), cfg.topLocations()),
			Cities:           topLocations(f.Cities, sumLocations(f.Cities), cfg.topLocations()),
			WithEmail:        f.WithEmail,
			WithPhone:        f.WithPhone,
			MarketingConsent: f.MarketingConsent,
		},
		Source: SourceDemo,
		IsDemo: true,
	}

	applyTargets(s, f.TargetSales, now, cfg)
	return s
}

// splitGroups apportions gross revenue across groups in proportion to their sales, to the cent
func splitGroups(groups []FixtureGroup, gross decimal.Decimal, capacities map[string]int) []GroupStat {
	weights := make([]float64, len(groups))
	sum := 0.0
	for i, g := range groups {
		weights[i] = float64(g.Sold)
		sum += weights[i]
	}
	cents := apportion(weights, sum, int(gross.Shift(2).IntPart()))

	out := make([]GroupStat, 0, len(groups))
	for i, g := range groups {
		out = append(out, newGroupStat(g.Key, g.Sold, decimal.New(int64(cents[i]), -2), capacities))
	}
	return out
}

func sumLocations(locs []LocationStat) int {
	total := 0
	for _, l := range locs {
		total += l.Count
	}
	return total
}

// emptySnapshot is the explicit "no data yet" state of a live event
func emptySnapshot(eventID string, now time.Time, cfg Config) *Snapshot {
	s := Build(eventID, nil, Capacities{}, now, cfg)
	s.Source = SourceEmpty
	return s
}
