package stats

import (
	"time"
)

// Config is passed explicitly to the engine so targets and dates can differ per deployment.
type Config struct {
	// FestivalDate is the first day of the festival, in Location.
	FestivalDate time.Time
	// TargetSales is the number of tickets the festival aims to sell.
	TargetSales int
	// Capacity is the venue capacity used when no zone capacities are known.
	Capacity int
	// DemoPrefix routes event ids to the fixture dataset.
	DemoPrefix string
	// WindowDays is the length of the daily series.
	WindowDays int
	// TopLocations truncates the province and city breakdowns.
	TopLocations int
	// Location defines calendar days.
	Location *time.Location
	// EmptyEventFixture shows fixture figures for live events that have no tickets yet.
	EmptyEventFixture bool
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		FestivalDate: time.Date(2027, time.June, 18, 0, 0, 0, 0, time.UTC),
		TargetSales:  18000,
		Capacity:     20000,
		DemoPrefix:   "demo",
		WindowDays:   30,
		TopLocations: 7,
		Location:     time.UTC,
	}
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Config) windowDays() int {
	if c.WindowDays <= 0 {
		return 30
	}
	return c.WindowDays
}

func (c Config) topLocations() int {
	if c.TopLocations <= 0 {
		return 7
	}
	return c.TopLocations
}
