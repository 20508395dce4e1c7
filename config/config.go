package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger     `mapstructure:"logger"`
	DB         Database   `mapstructure:"database"`
	API        API        `mapstructure:"api"`
	Cache      Cache      `mapstructure:"cache"`
	Backtest   Backtest   `mapstructure:"backtest"`
	MarketData MarketData `mapstructure:"market_data"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Backtest struct {
	MaxConcurrency      int           `mapstructure:"max_concurrency"`
	DefaultHistoryLimit int           `mapstructure:"default_history_limit"`
	MaxHistoryLimit     int           `mapstructure:"max_history_limit"`
	ResultCacheTTL      time.Duration `mapstructure:"result_cache_ttl"`
}

type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CandleCacheTTL      time.Duration `mapstructure:"candle_cache_ttl"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("backtest.max_concurrency", 4)
	viper.SetDefault("backtest.default_history_limit", 50)
	viper.SetDefault("backtest.max_history_limit", 200)
	viper.SetDefault("backtest.result_cache_ttl", 10*time.Minute)
	viper.SetDefault("market_data.timeout", 30*time.Second)
	viper.SetDefault("market_data.max_request_per_minute", 60)
	viper.SetDefault("market_data.candle_cache_ttl", 15*time.Minute)
}
