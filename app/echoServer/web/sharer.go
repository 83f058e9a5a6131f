package web

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shareit/util/apperr"
)

// HeaderUserID names the acting user on every item, booking and request call.
const HeaderUserID = "X-Sharer-User-Id"

const userIDKey = "user_id"

// SharerUser rejects requests without a positive numeric X-Sharer-User-Id
// and stores the id for UserID.
func SharerUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := ParseUserID(c.Request().Header.Get(HeaderUserID))
			if err != nil {
				return Fail(c, nil, err)
			}
			c.Set(userIDKey, id)
			return next(c)
		}
	}
}

func ParseUserID(raw string) (int64, error) {
	if raw == "" {
		return 0, apperr.Validation("missing " + HeaderUserID + " header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + HeaderUserID + " header")
	}
	return id, nil
}

// UserID returns the id stored by SharerUser, or 0 outside that middleware.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}
