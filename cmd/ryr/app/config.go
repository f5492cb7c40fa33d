package app

import (
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rgreinho/request-yo-racks-api/internal/server"
	"github.com/rgreinho/request-yo-racks-api/pkg/constants"
	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`
	NoColor bool   `mapstructure:"no_color"`
	Format  string `mapstructure:"format"`

	// Config file
	ConfigFile string `mapstructure:"-"`

	Log       LogConfig       `mapstructure:"log"`
	Collector CollectorConfig `mapstructure:"collector"`
	Server    ServerConfig    `mapstructure:"server"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CollectorConfig holds provider credentials and weights.
type CollectorConfig struct {
	Providers []string `mapstructure:"providers"`

	GooglePlacesAPIKey string `mapstructure:"google_places_api_key"`
	GoogleWeight       int    `mapstructure:"google_weight"`
	GoogleBaseURL      string `mapstructure:"google_base_url"`

	YelpAPIKey       string `mapstructure:"yelp_api_key"`
	YelpClientID     string `mapstructure:"yelp_client_id"`
	YelpClientSecret string `mapstructure:"yelp_client_secret"`
	YelpWeight       int    `mapstructure:"yelp_weight"`
	YelpBaseURL      string `mapstructure:"yelp_base_url"`

	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	PathPrefix  string        `mapstructure:"path_prefix"`
	CORSEnabled bool          `mapstructure:"cors_enabled"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	APIKey      string        `mapstructure:"api_key"`
	RateLimit   int           `mapstructure:"rate_limit"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	Metrics     bool          `mapstructure:"metrics"`
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (RYR_ prefixed, e.g. RYR_COLLECTOR_YELP_API_KEY)
// 3. .env files
// 4. Config file (--config or ~/.ryr.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".ryr")

		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(config, hook); err != nil {
		return nil, errors.WrapParse("yaml", v.ConfigFileUsed(), err)
	}
	config.ConfigFile = v.ConfigFileUsed()

	return config, nil
}

// setDefaults registers every key so that environment variables are picked
// up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("format", "")

	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("collector.providers", []string{constants.ProviderGoogle, constants.ProviderYelp})
	v.SetDefault("collector.google_places_api_key", "")
	v.SetDefault("collector.google_weight", constants.DefaultGoogleWeight)
	v.SetDefault("collector.google_base_url", "")
	v.SetDefault("collector.yelp_api_key", "")
	v.SetDefault("collector.yelp_client_id", "")
	v.SetDefault("collector.yelp_client_secret", "")
	v.SetDefault("collector.yelp_weight", constants.DefaultYelpWeight)
	v.SetDefault("collector.yelp_base_url", "")
	v.SetDefault("collector.timeout", constants.ProviderLookupTimeout)

	v.SetDefault("server.host", constants.DefaultHost)
	v.SetDefault("server.port", constants.DefaultPort)
	v.SetDefault("server.path_prefix", constants.DefaultPathPrefix)
	v.SetDefault("server.cors_enabled", false)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.cache_ttl", constants.DefaultCacheTTL)
	v.SetDefault("server.metrics", true)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags GlobalFlags) {
	c.Verbose = c.Verbose || flags.Verbose
	c.Quiet = c.Quiet || flags.Quiet
	c.NoColor = c.NoColor || flags.NoColor
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
}

// ServerSettings converts the server section into a server.Config.
func (c *Config) ServerSettings() server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = c.Server.Host
	cfg.Port = c.Server.Port
	cfg.PathPrefix = c.Server.PathPrefix
	cfg.CORSEnabled = c.Server.CORSEnabled
	cfg.CORSOrigins = c.Server.CORSOrigins
	cfg.APIKey = c.Server.APIKey
	cfg.RateLimit = c.Server.RateLimit
	cfg.MetricsEnabled = c.Server.Metrics
	if c.Server.CacheTTL > 0 {
		cfg.CacheTTL = c.Server.CacheTTL
	}
	return cfg
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
