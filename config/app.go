package config

import "time"

type App struct {
	Port        string `env:"APP_PORT" default:"9090"`
	DBDriver    string `env:"DB_DRIVER" default:"pgx"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" default:"true"`
	Env         string `env:"APP_ENV" default:"dev"`
}

type Gateway struct {
	Port      string        `env:"GATEWAY_PORT" default:"8080"`
	ServerURL string        `env:"SHAREIT_SERVER_URL" default:"http://localhost:9090"`
	Timeout   time.Duration `env:"SHAREIT_TIMEOUT" default:"10s"`
	Env       string        `env:"APP_ENV" default:"dev"`
}
