package echoServer

import (
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/web"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users are addressed by path, no sharer header needed
	users := e.Group("/users")
	users.GET("", c.User.List)
	users.POST("", c.User.Create)
	users.GET("/:id", c.User.Get)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	items := e.Group("/items", web.SharerUser())
	items.GET("", c.Item.List)
	items.POST("", c.Item.Create)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.PATCH("/:id", c.Item.Update)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", web.SharerUser())
	bookings.GET("", c.Booking.List)
	bookings.POST("", c.Booking.Create)
	bookings.GET("/owner", c.Booking.ListOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.PATCH("/:id", c.Booking.Decide)

	requests := e.Group("/requests", web.SharerUser())
	requests.GET("", c.Request.Own)
	requests.POST("", c.Request.Create)
	requests.GET("/all", c.Request.All)
	requests.GET("/:id", c.Request.Get)
}
