package web

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/validation"
	"shareit/model"
	"shareit/util/apperr"
)

// Status maps an error code to the HTTP status the API answers with.
// FORBIDDEN is reported as 404 and labelled NOT_FOUND by Fail, so other
// users' data is indistinguishable from missing data.
func Status(code apperr.ErrCode) int {
	switch code {
	case apperr.ErrValidation, apperr.ErrUnsupportedStatus:
		return http.StatusBadRequest
	case apperr.ErrNotFound, apperr.ErrForbidden:
		return http.StatusNotFound
	case apperr.ErrConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Fail writes err as a JSON error body. Coded errors are expected outcomes
// and logged at Warn; anything else is a 500 with details kept in the log.
func Fail(c echo.Context, log *slog.Logger, err error) error {
	if log == nil {
		log = slog.Default()
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	code := apperr.Code(err)
	if code == "" {
		log.Error("request failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "INTERNAL",
			"message": "internal error",
		})
	}

	msg := apperr.Message(err)
	log.Warn("request rejected", "code", code, "msg", msg, "req_id", rid, "path", c.Path())
	label, body := string(code), msg
	switch code {
	case apperr.ErrUnsupportedStatus:
		label = "Unknown state: UNSUPPORTED_STATUS"
	case apperr.ErrForbidden:
		label, body = string(apperr.ErrNotFound), "not found"
	}
	return c.JSON(Status(code), echo.Map{"error": label, "message": body})
}

// Decode binds the JSON body into dst and runs the echo validator on it.
func Decode(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.Validation("invalid body")
	}
	if err := c.Validate(dst); err != nil {
		return apperr.Validation(validation.Describe(err))
	}
	return nil
}

// Page reads from/size query params, falling back to size when absent.
func Page(c echo.Context, size int) (model.Page, error) {
	p := model.Page{Size: size}
	err := echo.QueryParamsBinder(c).
		Int("from", &p.From).
		Int("size", &p.Size).
		BindError()
	if err != nil {
		return p, apperr.Validation("from and size must be integers")
	}
	return p, p.Validate()
}

// PathID reads a positive int64 path param.
func PathID(c echo.Context, name string) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64(name, &id).BindError(); err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

// State returns the booking state query param, ALL when absent.
func State(c echo.Context) string {
	if s := c.QueryParam("state"); s != "" {
		return s
	}
	return string(model.StateAll)
}
