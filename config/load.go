package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the server config. A .env file in the working directory is
// applied first; real environment variables win over it.
func Load() App {
	loadDotenv()
	return App{
		Port:        port("APP_PORT", "9090"),
		DBDriver:    getenv("DB_DRIVER", "pgx"),
		DatabaseURL: must("DATABASE_URL"),
		AutoMigrate: getbool("DB_AUTO_MIGRATE", true),
		Env:         getenv("APP_ENV", "dev"),
	}
}

func LoadGateway() Gateway {
	loadDotenv()
	return Gateway{
		Port:      port("GATEWAY_PORT", "8080"),
		ServerURL: getenv("SHAREIT_SERVER_URL", "http://localhost:9090"),
		Timeout:   getduration("SHAREIT_TIMEOUT", 10*time.Second),
		Env:       getenv("APP_ENV", "dev"),
	}
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env", "err", err)
	}
}

// port prefers PORT, as set by most PaaS runtimes.
func port(k, def string) string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return getenv(k, def)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("bad bool env, using default", "key", k, "value", v)
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("bad duration env, using default", "key", k, "value", v)
		return def
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
