// Package main ShareIt API.
//
// @title           ShareIt API
// @version         1.0
// @description     Item sharing service: users, items, bookings, comments and item requests.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey SharerUser
// @in header
// @name X-Sharer-User-Id
// @description  ID of the acting user
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shareit/app/echoServer"
	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/validation"
	"shareit/config"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	db, err := database.New(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Error("migrate failed", "err", err)
			os.Exit(1)
		}
	}

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	cr := commentrepo.New(db)
	rr := requestrepo.New(db)

	// services
	us := usersvc.New(ur)
	is := itemsvc.New(itemsvc.Deps{Items: ir, Users: ur, Requests: rr, Bookings: br, Comments: cr})
	bs := bookingsvc.New(br, ur, ir)
	rs := requestsvc.New(rr, ur, ir)

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, nil)
	e.Validator = validation.New()

	e.GET("/health", echoServer.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:    &userctrl.Controller{Svc: us, Log: log},
		Item:    &itemctrl.Controller{Svc: is, Log: log},
		Booking: &bookingctrl.Controller{Svc: bs, Log: log},
		Request: &requestctrl.Controller{Svc: rs, Log: log},
	})

	log.Info("starting server", "port", cfg.Port, "driver", cfg.DBDriver, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
