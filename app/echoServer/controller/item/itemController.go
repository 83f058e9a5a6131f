package item

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/web"
	"shareit/model"
	itemsvc "shareit/service/item"
)

type Controller struct {
	Svc itemsvc.Service
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateItemReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	it, err := h.Svc.Create(c.Request().Context(), web.UserID(c), req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	h.Log.Info("item created", "item_id", it.ID, "owner_id", it.OwnerID)
	return c.JSON(http.StatusOK, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	var req model.UpdateItemReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	it, err := h.Svc.Update(c.Request().Context(), web.UserID(c), id, req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	v, err := h.Svc.Get(c.Request().Context(), web.UserID(c), id)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /items
func (h *Controller) List(c echo.Context) error {
	p, err := web.Page(c, model.DefaultPageSize)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	vs, err := h.Svc.ListByOwner(c.Request().Context(), web.UserID(c), p)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, vs)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	p, err := web.Page(c, model.DefaultPageSize)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), p)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	var req model.CreateCommentReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	cm, err := h.Svc.AddComment(c.Request().Context(), web.UserID(c), id, req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cm)
}
