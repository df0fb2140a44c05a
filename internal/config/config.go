package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Admin    AdminConfig
	JWT      JWTConfig
	Draw     DrawConfig
	Chain    ChainConfig
	Price    PriceConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds redis cache configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AdminConfig holds the shared secret for operator endpoints. An empty token
// means every admin request is rejected.
type AdminConfig struct {
	Token string
}

// JWTConfig holds JWT-specific configuration for user sessions
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// DrawConfig holds draw lifecycle configuration
type DrawConfig struct {
	Timezone         string  // IANA name used for calendar-day boundaries
	BaseJackpotUsd   float64 // jackpot for the very first draw
	JackpotOverride  float64 // when > 0, overrides inheritance from the prior draw
	RoundDuration    time.Duration
	WinnersPageMax   int
	DashboardPageMax int
}

// ChainConfig holds the on-chain balance RPC configuration
type ChainConfig struct {
	RPCURL        string
	TokenContract string
	MockRPC       bool
	CacheTTL      time.Duration
}

// PriceConfig holds the price oracle configuration
type PriceConfig struct {
	BaseURL    string
	PairID     string
	MockOracle bool
	CacheTTL   time.Duration
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "xpot-draw")
	viper.SetDefault("Redis.Addr", "localhost:6379")
	viper.SetDefault("Redis.DB", 0)
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Draw.Timezone", "UTC")
	viper.SetDefault("Draw.BaseJackpotUsd", 1000.0)
	viper.SetDefault("Draw.JackpotOverride", 0.0)
	viper.SetDefault("Draw.RoundDuration", 24*time.Hour)
	viper.SetDefault("Draw.WinnersPageMax", 50)
	viper.SetDefault("Draw.DashboardPageMax", 80)
	viper.SetDefault("Chain.MockRPC", true)
	viper.SetDefault("Chain.CacheTTL", 60*time.Second)
	viper.SetDefault("Price.MockOracle", true)
	viper.SetDefault("Price.PairID", "XPOT-USD")
	viper.SetDefault("Price.CacheTTL", 30*time.Second)
}

// Location resolves the configured draw timezone, falling back to UTC when
// the name does not parse.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Draw.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
