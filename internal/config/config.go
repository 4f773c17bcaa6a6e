package config

import "os"

const (
	AppName = "Bookstore Management API"
	Version = "1.0.0"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port           string
	LogLevel       string
	AllowedOrigins string
}

type AuthConfig struct {
	JWTSecret    string
	JWTAccessTTL string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			LogLevel:       getenv("LOG_LEVEL", "info"),
			AllowedOrigins: os.Getenv("CORS_ORIGINS"),
		},
		Auth: AuthConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTAccessTTL: getenv("JWT_ACCESS_TTL", "30m"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getenv("MONGODB_URL", "mongodb://localhost:27017"),
			Database: getenv("MONGODB_DB_NAME", "bookstore"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
