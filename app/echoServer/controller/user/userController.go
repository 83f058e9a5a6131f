package user

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/web"
	"shareit/model"
	usersvc "shareit/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// Create user
// @Summary      Create user
// @Description  Create a user; email must contain @ and be unique
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.CreateUserReq  true  "User payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Failure      500  {object}  map[string]any
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateUserReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	u, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	h.Log.Info("user created", "user_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}

// Update user
// @Summary      Update user
// @Description  Partial update; absent fields are kept
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path  int                  true  "User ID"
// @Param        payload  body  model.UpdateUserReq  true  "Fields to change"
// @Success      200  {object}  model.User
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /users/{id} [patch]
func (h *Controller) Update(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	var req model.UpdateUserReq
	if err := web.Decode(c, &req); err != nil {
		return web.Fail(c, h.Log, err)
	}
	u, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users
func (h *Controller) List(c echo.Context) error {
	us, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, us)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := web.PathID(c, "id")
	if err != nil {
		return web.Fail(c, h.Log, err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return web.Fail(c, h.Log, err)
	}
	h.Log.Info("user deleted", "user_id", id)
	return c.NoContent(http.StatusOK)
}
