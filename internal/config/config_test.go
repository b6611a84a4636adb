package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SERVICE_ENVIRONMENT", "development")
	t.Setenv("SQS_QUEUE_URL", "http://localhost:4566/000000000000/tickets")
	t.Setenv("SQS_REGION", "eu-west-1")
	t.Setenv("CLICKHOUSE_HOST", "localhost")
	t.Setenv("CLICKHOUSE_PORT", "9000")
	t.Setenv("CLICKHOUSE_DB", "tickets")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Service.Environment)
	assert.Equal(t, "8080", cfg.Service.APIPort)
	assert.Equal(t, "tickets", cfg.ClickHouse.Database)
	assert.Equal(t, 2000, cfg.Consumer.BatchSizeMax)
	assert.Equal(t, "demo", cfg.Stats.DemoPrefix)
	assert.Equal(t, 30, cfg.Stats.WindowDays)
	assert.Equal(t, "Europe/Madrid", cfg.Stats.Timezone)
	assert.Equal(t, "2027-06-18", cfg.Festival.Date)
	assert.Equal(t, 18000, cfg.Festival.TargetSales)
	assert.Equal(t, 20000, cfg.Festival.Capacity)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, os.Unsetenv("SQS_QUEUE_URL"))

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_InvalidFestivalDate(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FESTIVAL_DATE", "18/06/2027")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FESTIVAL_DATE")
}

func TestStatsConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STATS_TIMEZONE", "UTC")
	t.Setenv("STATS_DEMO_PREFIX", "sample")
	t.Setenv("STATS_EMPTY_EVENT_FIXTURE", "true")
	t.Setenv("FESTIVAL_DATE", "2028-07-01")
	t.Setenv("FESTIVAL_TARGET_SALES", "25000")

	cfg, err := Load()
	require.NoError(t, err)

	sc, err := cfg.StatsConfig()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2028, time.July, 1, 0, 0, 0, 0, time.UTC), sc.FestivalDate)
	assert.Equal(t, 25000, sc.TargetSales)
	assert.Equal(t, "sample", sc.DemoPrefix)
	assert.True(t, sc.EmptyEventFixture)
	assert.Equal(t, time.UTC, sc.Location)
}

func TestStatsConfig_FestivalDateInTimezone(t *testing.T) {
	cfg := &Config{
		Stats:    Stats{Timezone: "Europe/Madrid", WindowDays: 30},
		Festival: Festival{Date: "2027-06-18", TargetSales: 18000},
	}

	sc, err := cfg.StatsConfig()

	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", sc.Location.String())
	assert.Equal(t, 18, sc.FestivalDate.In(sc.Location).Day())
	assert.Equal(t, 0, sc.FestivalDate.In(sc.Location).Hour())
}

func TestStatsConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown timezone", Config{
			Stats:    Stats{Timezone: "Mars/Olympus", WindowDays: 30},
			Festival: Festival{Date: "2027-06-18"},
		}},
		{"zero window", Config{
			Stats:    Stats{Timezone: "UTC", WindowDays: 0},
			Festival: Festival{Date: "2027-06-18"},
		}},
		{"negative target", Config{
			Stats:    Stats{Timezone: "UTC", WindowDays: 30},
			Festival: Festival{Date: "2027-06-18", TargetSales: -1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.StatsConfig()
			assert.Error(t, err)
		})
	}
}
