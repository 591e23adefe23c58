package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/config"
)

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Push      PushConfig      `yaml:"push"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Auth      AuthConfig      `yaml:"auth"`
	Stripe    StripeConfig    `yaml:"stripe"`
	Policy    PolicyConfig    `yaml:"policy"`
	Retention RetentionConfig `yaml:"retention"`
}

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	// Timezone is the IANA location used for every hour-based gate
	// (template windows, quiet hours). All of them are evaluated in this
	// one deliberate timezone.
	Timezone string `yaml:"timezone"`
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	RequestsPerSecond int           `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

type PushConfig struct {
	GatewayURL string        `yaml:"gateway_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer"`
}

type StripeConfig struct {
	WebhookSecret string        `yaml:"webhook_secret"`
	DedupTTL      time.Duration `yaml:"dedup_ttl"`
}

// PolicyConfig holds the product-policy numbers. These are inputs, not
// engineering constants; every deployment may tune them.
type PolicyConfig struct {
	Segmentation SegmentationConfig `yaml:"segmentation"`
	Throttle     ThrottleConfig     `yaml:"throttle"`
	Contextual   ContextualConfig   `yaml:"contextual"`
}

type SegmentationConfig struct {
	// NewUserMaxDays: users within this many days of signup classify as
	// new_user
	NewUserMaxDays int `yaml:"new_user_max_days"`
	// InactiveMinDays: users with no action for this many days classify
	// as inactive
	InactiveMinDays int           `yaml:"inactive_min_days"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	// MaxPerWeek caps weekly sends per segment
	MaxPerWeek map[string]int `yaml:"max_per_week"`
}

type ThrottleConfig struct {
	PerDay           int           `yaml:"per_day"`
	PerWeek          int           `yaml:"per_week"`
	CategoryCooldown time.Duration `yaml:"category_cooldown"`
	// Quiet hours: no sends from QuietStartHour (inclusive) until
	// QuietEndHour (exclusive) the next morning
	QuietStartHour int `yaml:"quiet_start_hour"`
	QuietEndHour   int `yaml:"quiet_end_hour"`
}

type ContextualConfig struct {
	ActivityWaveMinDogs     int     `yaml:"activity_wave_min_dogs"`
	NeighborhoodMinProfiles int     `yaml:"neighborhood_min_profiles"`
	PleasantTempMin         float64 `yaml:"pleasant_temp_min"`
	PleasantTempMax         float64 `yaml:"pleasant_temp_max"`
}

type RetentionConfig struct {
	SendRecordTTL time.Duration `yaml:"send_record_ttl"`
	PruneInterval time.Duration `yaml:"prune_interval"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	configPath := getEnv("CONFIG_PATH", "./config/base.yaml")

	provider, err := config.NewYAML(
		config.File(configPath),
		config.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create config provider: %w", err)
	}

	var cfg Config
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("failed to populate config: %w", err)
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables if present
func (c *Config) overrideFromEnv() {
	if val := os.Getenv("SERVICE_ENVIRONMENT"); val != "" {
		c.Service.Environment = val
	}
	if val := os.Getenv("SERVICE_TIMEZONE"); val != "" {
		c.Service.Timezone = val
	}
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		c.HTTP.Addr = val
	}
	if val := os.Getenv("DATABASE_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DATABASE_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DATABASE_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DATABASE_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DATABASE_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}
	if val := os.Getenv("KAFKA_BROKER"); val != "" {
		c.Kafka.Brokers = []string{val}
	}
	if val := os.Getenv("PUSH_GATEWAY_URL"); val != "" {
		c.Push.GatewayURL = val
	}
	if val := os.Getenv("PUSH_API_KEY"); val != "" {
		c.Push.APIKey = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USERNAME"); val != "" {
		c.SMTP.Username = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("STRIPE_WEBHOOK_SECRET"); val != "" {
		c.Stripe.WebhookSecret = val
	}
	if val := os.Getenv("NOTIFICATIONS_PER_DAY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Policy.Throttle.PerDay = n
		}
	}
	if val := os.Getenv("NOTIFICATIONS_PER_WEEK"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Policy.Throttle.PerWeek = n
		}
	}
	if val := os.Getenv("CATEGORY_COOLDOWN"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Policy.Throttle.CategoryCooldown = d
		}
	}
}

// applyDefaults fills the values a partial YAML file may omit
func (c *Config) applyDefaults() {
	if c.Service.Timezone == "" {
		c.Service.Timezone = "Europe/Paris"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Push.Timeout <= 0 {
		c.Push.Timeout = 5 * time.Second
	}
	if c.Stripe.DedupTTL <= 0 {
		c.Stripe.DedupTTL = 72 * time.Hour
	}
	p := &c.Policy
	if p.Segmentation.NewUserMaxDays <= 0 {
		p.Segmentation.NewUserMaxDays = 7
	}
	if p.Segmentation.InactiveMinDays <= 0 {
		p.Segmentation.InactiveMinDays = 7
	}
	if p.Segmentation.CacheTTL <= 0 {
		p.Segmentation.CacheTTL = 15 * time.Minute
	}
	if len(p.Segmentation.MaxPerWeek) == 0 {
		p.Segmentation.MaxPerWeek = map[string]int{
			"new_user": 7,
			"active":   5,
			"inactive": 2,
			"premium":  2,
		}
	}
	if p.Throttle.PerDay <= 0 {
		p.Throttle.PerDay = 1
	}
	if p.Throttle.PerWeek <= 0 {
		p.Throttle.PerWeek = 7
	}
	if p.Throttle.CategoryCooldown <= 0 {
		p.Throttle.CategoryCooldown = 24 * time.Hour
	}
	if p.Throttle.QuietStartHour == 0 {
		p.Throttle.QuietStartHour = 21
	}
	if p.Throttle.QuietEndHour == 0 {
		p.Throttle.QuietEndHour = 8
	}
	if p.Contextual.ActivityWaveMinDogs <= 0 {
		p.Contextual.ActivityWaveMinDogs = 10
	}
	if p.Contextual.NeighborhoodMinProfiles <= 0 {
		p.Contextual.NeighborhoodMinProfiles = 5
	}
	if p.Contextual.PleasantTempMin == 0 && p.Contextual.PleasantTempMax == 0 {
		p.Contextual.PleasantTempMin = 18
		p.Contextual.PleasantTempMax = 25
	}
	if c.Retention.SendRecordTTL <= 0 {
		c.Retention.SendRecordTTL = 30 * 24 * time.Hour
	}
	if c.Retention.PruneInterval <= 0 {
		c.Retention.PruneInterval = 6 * time.Hour
	}
}

// GetDSN returns PostgreSQL connection string in URL format for pgx/v5
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
