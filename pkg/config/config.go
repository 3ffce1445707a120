package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects the data-source wiring for the whole process.
type Mode string

const (
	// ModeMemory runs everything against in-memory stubs. Useful for
	// demos and tests, matches the mock context the mobile apps shipped with.
	ModeMemory Mode = "memory"
	// ModeLive runs against MongoDB, Postgres, Redis and Kafka.
	ModeLive Mode = "live"
)

type Postgres struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type Config struct {
	AppEnv   string
	LogLevel string
	Mode     Mode

	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	Postgres Postgres

	KafkaBrokers []string
	SaleTopic    string

	// Remote client registry (used instead of the local one when set).
	ClientRegistryURL   string
	ClientRegistryToken string
}

// Load reads .env (when present) and environment variables with defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return &Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Mode:            Mode(getEnv("POS_MODE", string(ModeMemory))),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "posdb"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		Postgres: Postgres{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              getEnvInt("POSTGRES_PORT", 5432),
			User:              getEnv("POSTGRES_USER", "pos"),
			Password:          getEnv("POSTGRES_PASSWORD", "pos"),
			DBName:            getEnv("POSTGRES_DB", "posdb"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		KafkaBrokers:        strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		SaleTopic:           getEnv("SALE_TOPIC", "sale-events"),
		ClientRegistryURL:   getEnv("CLIENT_REGISTRY_URL", ""),
		ClientRegistryToken: getEnv("CLIENT_REGISTRY_TOKEN", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
