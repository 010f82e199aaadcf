package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"internhub"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"INTERNHUB_ADDRESS" default:":3443"`
	MetricsAddress string `envconfig:"INTERNHUB_METRICS_ADDRESS" default:":8080"`
	BaseUrl        string `envconfig:"INTERNHUB_BASE_URL" default:"https://localhost:3443"`
	LogLevel       string `envconfig:"INTERNHUB_LOG_LEVEL" default:"info"`

	// ListingValidityDays is the platform-defined validity window applied on
	// final approval and on renewal approval.
	ListingValidityDays int `envconfig:"INTERNHUB_LISTING_VALIDITY_DAYS" default:"30"`

	// ExpiryReminderWindowDays controls how far ahead the scheduler looks for
	// listings about to expire.
	ExpiryReminderWindowDays int    `envconfig:"INTERNHUB_EXPIRY_REMINDER_WINDOW_DAYS" default:"7"`
	ExpiryCheckInterval      string `envconfig:"INTERNHUB_EXPIRY_CHECK_INTERVAL" default:"1h"`
	SchedulerEnabled         bool   `envconfig:"INTERNHUB_SCHEDULER_ENABLED" default:"true"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config suitable for tests: an in-memory sqlite store and
// the standard validity windows.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: ":memory:",
		},
		Service: &svcConfig{
			Address:                  ":3443",
			MetricsAddress:           ":8080",
			LogLevel:                 "info",
			ListingValidityDays:      30,
			ExpiryReminderWindowDays: 7,
			ExpiryCheckInterval:      "1h",
		},
	}
}
