package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"

	"github.com/Villegascvrr/tricketv0-sub002/internal/stats"
)

// festivalDateLayout is the layout accepted by FESTIVAL_DATE
const festivalDateLayout = "2006-01-02"

type Config struct {
	Service    Service
	SQS        SQS
	ClickHouse ClickHouse
	Consumer   Consumer
	Stats      Stats
	Festival   Festival
}

type Service struct {
	Environment string `envconfig:"ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"API_PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"localhost:8080"`
}

type SQS struct {
	Endpoint string `envconfig:"ENDPOINT"`
	QueueURL string `envconfig:"QUEUE_URL" required:"true"`
	Region   string `envconfig:"REGION" required:"true"`
}

type ClickHouse struct {
	Host            string `envconfig:"HOST" required:"true"`
	Port            string `envconfig:"PORT" required:"true"`
	Database        string `envconfig:"DB" required:"true"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	UseTLS          bool   `envconfig:"USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME_SEC" default:"3600"`
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"BATCH_SIZE_MAX" default:"2000"`
	BatchTimeoutSec int    `envconfig:"BATCH_TIMEOUT_SEC" default:"10"`
	HealthCheckPort string `envconfig:"HEALTH_CHECK_PORT" default:"8081"`
}

// Stats tunes the statistics engine
type Stats struct {
	DemoPrefix        string `envconfig:"DEMO_PREFIX" default:"demo"`
	WindowDays        int    `envconfig:"WINDOW_DAYS" default:"30"`
	TopLocations      int    `envconfig:"TOP_LOCATIONS" default:"7"`
	Timezone          string `envconfig:"TIMEZONE" default:"Europe/Madrid"`
	EmptyEventFixture bool   `envconfig:"EMPTY_EVENT_FIXTURE" default:"false"`
}

// Festival holds the per-deployment sales target and festival date
type Festival struct {
	Date        string `envconfig:"DATE" default:"2027-06-18"`
	TargetSales int    `envconfig:"TARGET_SALES" default:"18000"`
	Capacity    int    `envconfig:"CAPACITY" default:"20000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := cfg.StatsConfig(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// StatsConfig converts the Stats and Festival sections into the engine configuration
func (c *Config) StatsConfig() (stats.Config, error) {
	loc, err := time.LoadLocation(c.Stats.Timezone)
	if err != nil {
		return stats.Config{}, fmt.Errorf("invalid STATS_TIMEZONE %q: %w", c.Stats.Timezone, err)
	}

	festivalDate, err := time.ParseInLocation(festivalDateLayout, c.Festival.Date, loc)
	if err != nil {
		return stats.Config{}, fmt.Errorf("invalid FESTIVAL_DATE %q: %w", c.Festival.Date, err)
	}

	if c.Stats.WindowDays <= 0 {
		return stats.Config{}, fmt.Errorf("STATS_WINDOW_DAYS must be positive, got %d", c.Stats.WindowDays)
	}
	if c.Festival.TargetSales < 0 {
		return stats.Config{}, fmt.Errorf("FESTIVAL_TARGET_SALES must not be negative, got %d", c.Festival.TargetSales)
	}

	return stats.Config{
		FestivalDate:      festivalDate,
		TargetSales:       c.Festival.TargetSales,
		Capacity:          c.Festival.Capacity,
		DemoPrefix:        c.Stats.DemoPrefix,
		WindowDays:        c.Stats.WindowDays,
		TopLocations:      c.Stats.TopLocations,
		Location:          loc,
		EmptyEventFixture: c.Stats.EmptyEventFixture,
	}, nil
}
