package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application-wide configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Log        LogConfig        `mapstructure:"log"`
	Production ProductionConfig `mapstructure:"production"`
	Shift      ShiftConfig      `mapstructure:"shift"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	CORS         CORSConfig    `mapstructure:"cors"`
	RateLimit    RateLimit     `mapstructure:"rate_limit"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimit per-client request budget for mutating endpoints
type RateLimit struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis settings. An empty address disables Redis.
type RedisConfig struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	CheckoutChannel string `mapstructure:"checkout_channel"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProductionConfig line defaults used when a production order or draft leaves them unset
type ProductionConfig struct {
	DefaultPulseMinutes int     `mapstructure:"default_pulse_minutes"`
	EfficiencyTarget    float64 `mapstructure:"efficiency_target"`
	EfficiencyWarning   float64 `mapstructure:"efficiency_warning"`
}

// ShiftConfig bootstrap shift calendar, written to the shift_config table when it is empty.
type ShiftConfig struct {
	StartTime string        `mapstructure:"start_time"`
	EndTime   string        `mapstructure:"end_time"`
	Timezone  string        `mapstructure:"timezone"`
	Breaks    []BreakConfig `mapstructure:"breaks"`
}

// BreakConfig one configured break, "HH:MM" bounds
type BreakConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit.requests", 120)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "sgp_costura")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "America/Sao_Paulo")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.checkout_channel", "pulse:checkouts")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("production.default_pulse_minutes", 60)
	v.SetDefault("production.efficiency_target", 80.0)
	v.SetDefault("production.efficiency_warning", 60.0)

	v.SetDefault("shift.start_time", "07:00")
	v.SetDefault("shift.end_time", "17:00")
	v.SetDefault("shift.timezone", "America/Sao_Paulo")
	v.SetDefault("shift.breaks", []map[string]string{{"start": "12:00", "end": "13:00"}})

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be within 1-65535")
	}
	if c.Production.DefaultPulseMinutes <= 0 {
		return fmt.Errorf("config: production.default_pulse_minutes must be positive")
	}
	if c.Shift.StartTime == "" || c.Shift.EndTime == "" {
		return fmt.Errorf("config: shift.start_time and shift.end_time are required")
	}
	if _, err := time.LoadLocation(c.Shift.Timezone); err != nil {
		return fmt.Errorf("config: shift.timezone %q: %w", c.Shift.Timezone, err)
	}
	for i, b := range c.Shift.Breaks {
		if b.Start == "" || b.End == "" {
			return fmt.Errorf("config: shift.breaks[%d] needs start and end", i)
		}
	}
	return nil
}
