package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	Gemini    GeminiConfig
	History   HistoryConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	BodyLimit    int
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTLMin   int
}

type GeminiConfig struct {
	APIKey        string
	Model         string
	FallbackModel string
	BaseURL       string
	TimeoutSec    int
}

type HistoryConfig struct {
	// Limit caps how many entries a history query returns per user.
	// 0 means uncapped.
	Limit int
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/clarity")

	viper.SetEnvPrefix("CLARITY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about; secrets
	// without defaults must be bound explicitly or Unmarshal never sees
	// their environment variables.
	viper.BindEnv("gemini.apiKey")
	viper.BindEnv("redis.password")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readTimeout", 30)
	viper.SetDefault("server.writeTimeout", 30)
	viper.SetDefault("server.bodyLimit", 1048576)

	viper.SetDefault("sqlite.path", "./data/clarity.db")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttlMin", 60)

	// The API key has no default on purpose: a missing credential is a
	// configuration error, not something to paper over.
	viper.SetDefault("gemini.model", "gemini-1.5-flash-latest")
	viper.SetDefault("gemini.fallbackModel", "gemini-pro")
	viper.SetDefault("gemini.baseURL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.timeoutSec", 30)

	viper.SetDefault("history.limit", 0)

	viper.SetDefault("ratelimit.requestsPerMinute", 30)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
