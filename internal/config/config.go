// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
	Cache      CacheConfig
	Storage    StorageConfig
	Prediction PredictionConfig
	Alerts     AlertsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DatabaseConfig selects the store dialect. URL wins over the discrete
// fields when set.
type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LogConfig struct {
	Level  string
	Format string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	DashboardTTLSeconds int
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	UseSSL       bool
	ReportPrefix string
}

// PredictionConfig overrides the reorder heuristics. Defaults are the
// values every stored prediction was computed with.
type PredictionConfig struct {
	DefaultCycleWeeks int
	SafetyBufferWeeks int
	WeeksPerMonth     float64
	DueSoonWeeks      int
}

type AlertsConfig struct {
	UpcomingWindowWeeks int
	InactiveWeeks       int
	InactiveHighWeeks   int
	OverdueHighWeeks    int
	OverdueMediumWeeks  int
	RecentOrderWeeks    int
	Workers             int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.GetViper()
		// Read from environment variables
		v.AutomaticEnv()

		instance = load(v)
	})

	return instance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "packdash")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_DASHBOARD_TTL_SECONDS", 60)
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "packdash")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("STORAGE_REPORT_PREFIX", "reports")
	v.SetDefault("PREDICTION_DEFAULT_CYCLE_WEEKS", 26)
	v.SetDefault("PREDICTION_SAFETY_BUFFER_WEEKS", 12)
	v.SetDefault("PREDICTION_WEEKS_PER_MONTH", 4.33)
	v.SetDefault("PREDICTION_DUE_SOON_WEEKS", 2)
	v.SetDefault("ALERTS_UPCOMING_WINDOW_WEEKS", 3)
	v.SetDefault("ALERTS_INACTIVE_WEEKS", 8)
	v.SetDefault("ALERTS_INACTIVE_HIGH_WEEKS", 12)
	v.SetDefault("ALERTS_OVERDUE_HIGH_WEEKS", 4)
	v.SetDefault("ALERTS_OVERDUE_MEDIUM_WEEKS", 2)
	v.SetDefault("ALERTS_RECENT_ORDER_WEEKS", 4)
	v.SetDefault("ALERTS_WORKERS", 8)
}

func load(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:   v.GetString("DB_DRIVER"),
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Cache: CacheConfig{
			Enabled:             v.GetBool("CACHE_ENABLED"),
			RedisURL:            v.GetString("REDIS_URL"),
			RedisHost:           v.GetString("REDIS_HOST"),
			RedisPort:           v.GetString("REDIS_PORT"),
			RedisPassword:       v.GetString("REDIS_PASSWORD"),
			RedisDB:             v.GetInt("REDIS_DB"),
			DashboardTTLSeconds: v.GetInt("CACHE_DASHBOARD_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("STORAGE_ENDPOINT"),
			AccessKey:    v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:    v.GetString("STORAGE_SECRET_KEY"),
			Bucket:       v.GetString("STORAGE_BUCKET"),
			Region:       v.GetString("STORAGE_REGION"),
			UseSSL:       v.GetBool("STORAGE_USE_SSL"),
			ReportPrefix: v.GetString("STORAGE_REPORT_PREFIX"),
		},
		Prediction: PredictionConfig{
			DefaultCycleWeeks: v.GetInt("PREDICTION_DEFAULT_CYCLE_WEEKS"),
			SafetyBufferWeeks: v.GetInt("PREDICTION_SAFETY_BUFFER_WEEKS"),
			WeeksPerMonth:     v.GetFloat64("PREDICTION_WEEKS_PER_MONTH"),
			DueSoonWeeks:      v.GetInt("PREDICTION_DUE_SOON_WEEKS"),
		},
		Alerts: AlertsConfig{
			UpcomingWindowWeeks: v.GetInt("ALERTS_UPCOMING_WINDOW_WEEKS"),
			InactiveWeeks:       v.GetInt("ALERTS_INACTIVE_WEEKS"),
			InactiveHighWeeks:   v.GetInt("ALERTS_INACTIVE_HIGH_WEEKS"),
			OverdueHighWeeks:    v.GetInt("ALERTS_OVERDUE_HIGH_WEEKS"),
			OverdueMediumWeeks:  v.GetInt("ALERTS_OVERDUE_MEDIUM_WEEKS"),
			RecentOrderWeeks:    v.GetInt("ALERTS_RECENT_ORDER_WEEKS"),
			Workers:             v.GetInt("ALERTS_WORKERS"),
		},
	}
}
