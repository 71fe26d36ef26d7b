package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// RateLimitConfig holds the two fixed windows: a general one for the API
// surface and a tighter one for the generation proxies.
type RateLimitConfig struct {
	Window   time.Duration
	Max      int
	AIWindow time.Duration
	AIMax    int
}

type ProviderConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	TextTimeout       time.Duration
	HFAPIKey          string
	HFModel           string
	ImageTimeout      time.Duration
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	AudioTimeout      time.Duration
}

type MediaConfig struct {
	ImagesDir string
	AudioDir  string
	Retention time.Duration
}

// ArchiveConfig mirrors generated media to an S3-compatible bucket so copies
// survive the local retention sweep. Disabled unless an endpoint is set.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Security         SecurityConfig
	RateLimit        RateLimitConfig
	Provider         ProviderConfig
	Media            MediaConfig
	Archive          ArchiveConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("EPSILON")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the startup contract: the process refuses to boot
// without a database, a signing secret of usable strength, and credentials
// for every generation provider.
func (cfg *AppConfig) Validate() error {
	var missing []string

	if cfg.Postgres.DSN == "" {
		missing = append(missing, "postgres.dsn")
	}
	if cfg.Security.JWTSecret == "" {
		missing = append(missing, "security.jwtsecret")
	}
	if cfg.Provider.GeminiAPIKey == "" {
		missing = append(missing, "provider.geminiapikey")
	}
	if cfg.Provider.HFAPIKey == "" {
		missing = append(missing, "provider.hfapikey")
	}
	if cfg.Provider.ElevenLabsAPIKey == "" {
		missing = append(missing, "provider.elevenlabsapikey")
	}
	if cfg.Provider.ElevenLabsVoiceID == "" {
		missing = append(missing, "provider.elevenlabsvoiceid")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	if len(cfg.Security.JWTSecret) < 32 {
		return errors.New("security.jwtsecret must be at least 32 characters")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "2m30s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("security.tokenttl", "24h")

	v.SetDefault("ratelimit.window", "15m")
	v.SetDefault("ratelimit.max", 100)
	v.SetDefault("ratelimit.aiwindow", "1m")
	v.SetDefault("ratelimit.aimax", 10)

	v.SetDefault("provider.geminimodel", "gemini-1.5-flash")
	v.SetDefault("provider.texttimeout", "60s")
	v.SetDefault("provider.hfmodel", "black-forest-labs/FLUX.1-schnell")
	v.SetDefault("provider.imagetimeout", "2m")
	v.SetDefault("provider.audiotimeout", "30s")

	v.SetDefault("media.imagesdir", "./data/images")
	v.SetDefault("media.audiodir", "./data/audio")
	v.SetDefault("media.retention", "24h")

	v.SetDefault("archive.region", "us-east-1")

	v.SetDefault("allowcorsorigins", "http://localhost:3000")
}
