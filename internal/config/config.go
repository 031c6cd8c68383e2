package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type LogConfig struct {
	Level string
}

// JobsConfig drives the crmjob binary: where the API lives, where each job
// appends its log lines, and the low-stock replenishment defaults.
type JobsConfig struct {
	APIBaseURL        string
	HTTPTimeout       time.Duration
	HeartbeatLogFile  string
	LowStockLogFile   string
	RemindersLogFile  string
	ReportLogFile     string
	LowStockIncrement int
	LowStockThreshold int
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "crm")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "crm")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("DB_MIGRATIONS_PATH", "db/migrations")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("JOB_HTTP_TIMEOUT", "10s")
	viper.SetDefault("HEARTBEAT_LOG_FILE", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("LOW_STOCK_LOG_FILE", "/tmp/low_stock_updates_log.txt")
	viper.SetDefault("REMINDERS_LOG_FILE", "/tmp/order_reminders_log.txt")
	viper.SetDefault("REPORT_LOG_FILE", "/tmp/crm_report_log.txt")
	viper.SetDefault("LOW_STOCK_INCREMENT", 10)
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	jobTimeout, err := time.ParseDuration(viper.GetString("JOB_HTTP_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("SERVER_PORT"),
			ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			MigrationsPath:  viper.GetString("DB_MIGRATIONS_PATH"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Jobs: JobsConfig{
			APIBaseURL:        viper.GetString("API_BASE_URL"),
			HTTPTimeout:       jobTimeout,
			HeartbeatLogFile:  viper.GetString("HEARTBEAT_LOG_FILE"),
			LowStockLogFile:   viper.GetString("LOW_STOCK_LOG_FILE"),
			RemindersLogFile:  viper.GetString("REMINDERS_LOG_FILE"),
			ReportLogFile:     viper.GetString("REPORT_LOG_FILE"),
			LowStockIncrement: viper.GetInt("LOW_STOCK_INCREMENT"),
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
		},
	}

	return cfg, nil
}
