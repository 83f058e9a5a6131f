package request

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/web"
	"shareit/model"
	requestsvc "shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRequestReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	rq, err := h.Svc.Create(c.Request().Context(), web.UserID(c), req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	h.Log.Info("request created", "request_id", rq.ID, "requester_id", rq.RequesterID)
	return c.JSON(http.StatusOK, rq)
}

// GET /requests
func (h *Controller) Own(c echo.Context) error {
	rs, err := h.Svc.Own(c.Request().Context(), web.UserID(c))
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rs)
}

// GET /requests/all?from=&size=
func (h *Controller) All(c echo.Context) error {
	p, err := web.Page(c, model.DefaultRequestSize)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	rs, err := h.Svc.All(c.Request().Context(), web.UserID(c), p)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rs)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	rq, err := h.Svc.Get(c.Request().Context(), web.UserID(c), id)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, rq)
}
