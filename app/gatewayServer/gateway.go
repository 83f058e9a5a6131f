package gatewayServer

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shareit/app/echoServer/web"
	"shareit/model"
	shareitrepo "shareit/repository/shareit"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

// Handler rejects malformed calls locally and relays the rest to the
// server, returning its status and body untouched.
type Handler struct {
	Up  shareitrepo.Repo
	Log *slog.Logger
	Now func() time.Time
}

type check func(c echo.Context) error

// BodyLimit caps payloads the gateway buffers before forwarding.
const BodyLimit = "64K"

func Register(e *echo.Echo, h *Handler) {
	if h.Now == nil {
		h.Now = time.Now
	}
	id := pathID("id")
	e.Use(middleware.BodyLimit(BodyLimit))

	users := e.Group("/users")
	users.GET("", h.forward())
	users.POST("", h.forward(decode[model.CreateUserReq]()))
	users.GET("/:id", h.forward(id))
	users.PATCH("/:id", h.forward(id, decode[model.UpdateUserReq]()))
	users.DELETE("/:id", h.forward(id))

	items := e.Group("/items")
	items.GET("", h.forward(sharer, page(model.DefaultPageSize)))
	items.POST("", h.forward(sharer, decode[model.CreateItemReq]()))
	items.GET("/search", h.forward(sharer, page(model.DefaultPageSize)))
	items.GET("/:id", h.forward(sharer, id))
	items.PATCH("/:id", h.forward(sharer, id, decode[model.UpdateItemReq]()))
	items.POST("/:id/comment", h.forward(sharer, id, decode[model.CreateCommentReq]()))

	bookings := e.Group("/bookings")
	bookings.GET("", h.forward(sharer, state, page(model.DefaultPageSize)))
	bookings.POST("", h.forward(sharer, h.bookingWindow))
	bookings.GET("/owner", h.forward(sharer, state, page(model.DefaultPageSize)))
	bookings.GET("/:id", h.forward(sharer, id))
	bookings.PATCH("/:id", h.forward(sharer, id, approved))

	requests := e.Group("/requests")
	requests.GET("", h.forward(sharer))
	requests.POST("", h.forward(sharer, decode[model.CreateRequestReq]()))
	requests.GET("/all", h.forward(sharer, page(model.DefaultRequestSize)))
	requests.GET("/:id", h.forward(sharer, id))
}

func (h *Handler) forward(checks ...check) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var raw []byte
		if req.Body != nil {
			b, err := io.ReadAll(req.Body)
			if err != nil {
				return web.Fail(c, h.Log, apperr.Validation("unreadable body"))
			}
			raw = b
			req.Body = io.NopCloser(bytes.NewReader(raw))
		}
		for _, chk := range checks {
			if err := chk(c); err != nil {
				return web.Fail(c, h.Log, err)
			}
		}

		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		rep, err := h.Up.Forward(req.Context(), shareitrepo.Call{
			Method:    req.Method,
			Path:      req.URL.Path,
			RawQuery:  req.URL.RawQuery,
			UserID:    req.Header.Get(web.HeaderUserID),
			RequestID: rid,
			Body:      raw,
		})
		if err != nil {
			h.Log.Error("upstream failed",
				"err", err,
				"req_id", rid,
				"path", c.Path(),
				"method", req.Method,
			)
			return c.JSON(http.StatusBadGateway, echo.Map{
				"error":   "BAD_GATEWAY",
				"message": "shareit server unavailable",
			})
		}
		if len(rep.Body) == 0 {
			return c.NoContent(rep.Status)
		}
		ct := rep.ContentType
		if ct == "" {
			ct = echo.MIMEApplicationJSON
		}
		return c.Blob(rep.Status, ct, rep.Body)
	}
}

func sharer(c echo.Context) error {
	_, err := web.ParseUserID(c.Request().Header.Get(web.HeaderUserID))
	return err
}

func pathID(name string) check {
	return func(c echo.Context) error {
		_, err := web.PathID(c, name)
		return err
	}
}

func page(size int) check {
	return func(c echo.Context) error {
		_, err := web.Page(c, size)
		return err
	}
}

func state(c echo.Context) error {
	_, err := bookingsvc.ParseState(web.State(c))
	return err
}

func approved(c echo.Context) error {
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return apperr.Validation("approved must be true or false")
	}
	return nil
}

func decode[T any]() check {
	return func(c echo.Context) error {
		var v T
		return web.Decode(c, &v)
	}
}

func (h *Handler) bookingWindow(c echo.Context) error {
	var req model.CreateBookingReq
	if err := web.Decode(c, &req); err != nil {
		return err
	}
	return bookingsvc.ValidateWindow(req.Start.Std(), req.End.Std(), h.Now())
}
