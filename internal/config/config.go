package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DefaultOwner string // owner used when the request carries no X-Owner-ID
	MaxImportMB  int    // upload size ceiling for bookmark imports
	StrategyFile string // optional YAML file overriding classification strategies

	// Classification endpoint
	AIEndpoint    string        // chat-completions URL (ex: https://api.openai.com/v1/chat/completions)
	AIAPIKey      string        // optional bearer token
	AIModel       string        // model identifier
	AITimeout     time.Duration // wall-clock ceiling per classification request
	AIMaxTokens   int           // response size ceiling
	AITemperature float64

	// Job table hygiene
	JobRetention  time.Duration // terminal jobs older than this are evicted
	JobGCInterval time.Duration // how often the janitor sweeps

	// Rate limiting on job creation
	JobRateBurst  int
	JobRatePerMin int
	TrustProxy    bool // true => trust X-Forwarded-For headers

	// Redis (optional; empty addr => in-memory document store)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout per ping attempt
	RedisWarnThreshold  int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKMARKD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BOOKMARKD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("BOOKMARKD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKMARKD_PRETTY_LOG", true),

		// Documents
		DefaultOwner: getenv("BOOKMARKD_DEFAULT_OWNER", "default"),
		MaxImportMB:  getenvInt("BOOKMARKD_MAX_IMPORT_MB", 20),
		StrategyFile: getenv("BOOKMARKD_STRATEGY_FILE", ""),

		// Classification endpoint
		AIEndpoint:    requireEnv("BOOKMARKD_AI_ENDPOINT"),
		AIAPIKey:      getenv("BOOKMARKD_AI_API_KEY", ""),
		AIModel:       getenv("BOOKMARKD_AI_MODEL", "gpt-4o-mini"),
		AITimeout:     mustDuration("BOOKMARKD_AI_TIMEOUT", 60*time.Second),
		AIMaxTokens:   getenvInt("BOOKMARKD_AI_MAX_TOKENS", 2048),
		AITemperature: mustFloat("BOOKMARKD_AI_TEMPERATURE", 0.2),

		// Job table hygiene
		JobRetention:  mustDuration("BOOKMARKD_JOB_RETENTION", 24*time.Hour),
		JobGCInterval: mustDuration("BOOKMARKD_JOB_GC_INTERVAL", time.Hour),

		// Rate limiting
		JobRateBurst:  getenvInt("BOOKMARKD_JOB_RATE_BURST", 3),
		JobRatePerMin: getenvInt("BOOKMARKD_JOB_RATE_PER_MIN", 6),
		TrustProxy:    mustBool("BOOKMARKD_TRUST_PROXY", false),

		// Redis settings
		RedisAddr:           getenv("BOOKMARKD_REDIS_ADDR", ""),
		RedisUser:           getenv("BOOKMARKD_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("BOOKMARKD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BOOKMARKD_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.AIAPIKey != "" {
			cfgCopy.AIAPIKey = "***REDACTED***"
		}
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		panic(fmt.Sprintf("❌ FATAL: Invalid duration value for %s: %s", key, v))
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		panic(fmt.Sprintf("❌ FATAL: Invalid boolean value for %s: %s", key, v))
	}
	return def
}

func mustFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		panic(fmt.Sprintf("❌ FATAL: Invalid float value for %s: %s", key, v))
	}
	return def
}
