package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"shareit/app/echoServer"
	"shareit/app/echoServer/validation"
	"shareit/app/gatewayServer"
	"shareit/config"
	shareitrepo "shareit/repository/shareit"
	"shareit/util/httpx"
)

func main() {
	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	up := shareitrepo.NewHTTP(cfg.ServerURL, httpx.New(cfg.Timeout))

	e := echo.New()
	e.HideBanner = true
	// ulids sort by time, which keeps gateway and server logs easy to line up
	echoServer.RegisterMiddlewares(e, func() string { return ulid.Make().String() })
	e.Validator = validation.New()

	e.GET("/health", echoServer.Health)
	gatewayServer.Register(e, &gatewayServer.Handler{Up: up, Log: log})

	log.Info("starting gateway", "port", cfg.Port, "upstream", cfg.ServerURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
