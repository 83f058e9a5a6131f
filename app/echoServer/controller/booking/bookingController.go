package booking

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/web"
	"shareit/model"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// Create booking
// @Summary      Book an item
// @Description  Books an available item of another user; the booking starts WAITING
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  int                     true  "Booker ID"
// @Param        payload           body    model.CreateBookingReq  true  "Booking window"
// @Success      200  {object}  model.Booking
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateBookingReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	b, err := h.Svc.Create(c.Request().Context(), web.UserID(c), req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	h.Log.Info("booking created", "booking_id", b.ID, "item_id", b.ItemID, "booker_id", b.BookerID)
	return c.JSON(http.StatusOK, b)
}

// Decide on booking
// @Summary      Approve or reject
// @Tags         bookings
// @Produce      json
// @Param        X-Sharer-User-Id  header  int   true  "Owner ID"
// @Param        id                path    int   true  "Booking ID"
// @Param        approved          query   bool  true  "true approves, false rejects"
// @Success      200  {object}  model.Booking
// @Failure      400  {object}  map[string]any "bad flag or status already decided"
// @Failure      404  {object}  map[string]any
// @Router       /bookings/{id} [patch]
func (h *Controller) Decide(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	approve, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return web.Fail(c, h.Log, apperr.Validation("approved must be true or false"))
	}
	b, err := h.Svc.Decide(c.Request().Context(), web.UserID(c), id, approve)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	h.Log.Info("booking decided", "booking_id", b.ID, "status", b.Status)
	return c.JSON(http.StatusOK, b)
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	b, err := h.Svc.Get(c.Request().Context(), web.UserID(c), id)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings?state=&from=&size=
func (h *Controller) List(c echo.Context) error {
	return h.list(c, h.Svc.ListByBooker)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListOwner(c echo.Context) error {
	return h.list(c, h.Svc.ListByOwner)
}

type lister func(ctx context.Context, userID int64, state string, p model.Page) ([]model.Booking, error)

func (h *Controller) list(c echo.Context, fn lister) error {
	p, err := web.Page(c, model.DefaultPageSize)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	bs, err := fn(c.Request().Context(), web.UserID(c), web.State(c), p)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, bs)
}
