package echoServer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/validation"
	"shareit/app/echoServer/web"
	"shareit/model"
	"shareit/util/apperr"
)

type userSvcMock struct {
	createFn func(ctx context.Context, req model.CreateUserReq) (*model.User, error)
	updateFn func(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error)
	getFn    func(ctx context.Context, id int64) (*model.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *userSvcMock) Create(ctx context.Context, req model.CreateUserReq) (*model.User, error) {
	return m.createFn(ctx, req)
}
func (m *userSvcMock) Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error) {
	return m.updateFn(ctx, id, req)
}
func (m *userSvcMock) Get(ctx context.Context, id int64) (*model.User, error) { return m.getFn(ctx, id) }
func (m *userSvcMock) List(ctx context.Context) ([]model.User, error)         { return []model.User{}, nil }
func (m *userSvcMock) Delete(ctx context.Context, id int64) error             { return m.deleteFn(ctx, id) }

type itemSvcMock struct {
	listFn   func(ctx context.Context, ownerID int64, p model.Page) ([]model.ItemView, error)
	searchFn func(ctx context.Context, text string, p model.Page) ([]model.Item, error)
}

func (m *itemSvcMock) Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error) {
	return &model.Item{ID: 1, Name: req.Name, Description: req.Description, Available: *req.Available, OwnerID: ownerID}, nil
}
func (m *itemSvcMock) Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (*model.Item, error) {
	return nil, apperr.Forbidden("only the owner can edit an item")
}
func (m *itemSvcMock) Get(ctx context.Context, userID, itemID int64) (*model.ItemView, error) {
	return &model.ItemView{Item: model.Item{ID: itemID}, Comments: []model.Comment{}}, nil
}
func (m *itemSvcMock) ListByOwner(ctx context.Context, ownerID int64, p model.Page) ([]model.ItemView, error) {
	return m.listFn(ctx, ownerID, p)
}
func (m *itemSvcMock) Search(ctx context.Context, text string, p model.Page) ([]model.Item, error) {
	return m.searchFn(ctx, text, p)
}
func (m *itemSvcMock) AddComment(ctx context.Context, authorID, itemID int64, req model.CreateCommentReq) (*model.Comment, error) {
	return nil, apperr.Validation("user has not rented this item")
}

type bookingSvcMock struct {
	decideFn func(ctx context.Context, ownerID, bookingID int64, approve bool) (*model.Booking, error)
	getFn    func(ctx context.Context, userID, bookingID int64) (*model.Booking, error)
	listFn   func(ctx context.Context, userID int64, state string, p model.Page) ([]model.Booking, error)
}

func (m *bookingSvcMock) Create(ctx context.Context, bookerID int64, req model.CreateBookingReq) (*model.Booking, error) {
	return &model.Booking{
		ID: 5, ItemID: req.ItemID, BookerID: bookerID, Status: model.BookingWaiting,
		Start: req.Start.Time, End: req.End.Time,
	}, nil
}
func (m *bookingSvcMock) Decide(ctx context.Context, ownerID, bookingID int64, approve bool) (*model.Booking, error) {
	return m.decideFn(ctx, ownerID, bookingID, approve)
}
func (m *bookingSvcMock) Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	return m.getFn(ctx, userID, bookingID)
}
func (m *bookingSvcMock) ListByBooker(ctx context.Context, bookerID int64, state string, p model.Page) ([]model.Booking, error) {
	return m.listFn(ctx, bookerID, state, p)
}
func (m *bookingSvcMock) ListByOwner(ctx context.Context, ownerID int64, state string, p model.Page) ([]model.Booking, error) {
	return m.listFn(ctx, ownerID, state, p)
}

type requestSvcMock struct {
	allFn func(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error)
}

func (m *requestSvcMock) Create(ctx context.Context, userID int64, req model.CreateRequestReq) (*model.ItemRequest, error) {
	return &model.ItemRequest{ID: 1, Description: req.Description, RequesterID: userID, Items: []model.RequestItem{}}, nil
}
func (m *requestSvcMock) Own(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return []model.ItemRequest{}, nil
}
func (m *requestSvcMock) All(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error) {
	return m.allFn(ctx, userID, p)
}
func (m *requestSvcMock) Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error) {
	return nil, apperr.NotFound("request not found")
}

type mocks struct {
	users    *userSvcMock
	items    *itemSvcMock
	bookings *bookingSvcMock
	requests *requestSvcMock
}

func newServer(t *testing.T) (*echo.Echo, *mocks) {
	t.Helper()
	m := &mocks{
		users:    &userSvcMock{},
		items:    &itemSvcMock{},
		bookings: &bookingSvcMock{},
		requests: &requestSvcMock{},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validation.New()
	RegisterMiddlewares(e, nil)
	Register(e, C{
		User:    &user.Controller{Svc: m.users, Log: log},
		Item:    &item.Controller{Svc: m.items, Log: log},
		Booking: &booking.Controller{Svc: m.bookings, Log: log},
		Request: &request.Controller{Svc: m.requests, Log: log},
	})
	return e, m
}

func do(e *echo.Echo, method, target, body string, userID string) (*httptest.ResponseRecorder, map[string]any) {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(web.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestUsers(t *testing.T) {
	e, m := newServer(t)
	m.users.createFn = func(ctx context.Context, req model.CreateUserReq) (*model.User, error) {
		if req.Email == "dup@example.com" {
			return nil, apperr.Conflict("email already registered")
		}
		return &model.User{ID: 1, Name: req.Name, Email: req.Email}, nil
	}
	m.users.deleteFn = func(ctx context.Context, id int64) error {
		return apperr.NotFound("user not found")
	}

	rec, body := do(e, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "ann@example.com", body["email"])
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec, body = do(e, http.MethodPost, "/users", `{"name":"Ann","email":"ann.example.com"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION", body["error"])
	require.Equal(t, "email: contains=@", body["message"])

	rec, _ = do(e, http.MethodPost, "/users", `{"name":`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(e, http.MethodPost, "/users", `{"name":"Ann","email":"dup@example.com"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "email already registered", body["message"])

	rec, _ = do(e, http.MethodDelete, "/users/9", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(e, http.MethodGet, "/users/abc", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSharerHeaderRequired(t *testing.T) {
	e, m := newServer(t)
	m.items.listFn = func(ctx context.Context, ownerID int64, p model.Page) ([]model.ItemView, error) {
		require.Equal(t, int64(7), ownerID)
		require.Equal(t, model.Page{From: 0, Size: model.DefaultPageSize}, p)
		return []model.ItemView{}, nil
	}

	rec, body := do(e, http.MethodGet, "/items", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing X-Sharer-User-Id header", body["message"])

	rec, _ = do(e, http.MethodGet, "/items", "", "abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(e, http.MethodGet, "/items", "", "7")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestItems(t *testing.T) {
	e, m := newServer(t)
	m.items.searchFn = func(ctx context.Context, text string, p model.Page) ([]model.Item, error) {
		require.Equal(t, "drill", text)
		require.Equal(t, model.Page{From: 2, Size: 5}, p)
		return []model.Item{{ID: 3, Name: "Drill", Available: true}}, nil
	}

	rec, body := do(e, http.MethodPost, "/items", `{"name":"Drill","description":"cordless","available":true}`, "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), body["ownerId"])

	rec, body = do(e, http.MethodPost, "/items", `{"name":"Drill","description":"cordless"}`, "1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "available: required", body["message"])

	rec, _ = do(e, http.MethodGet, "/items/search?text=drill&from=2&size=5", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(e, http.MethodGet, "/items/search?text=drill&size=0", "", "1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(e, http.MethodPatch, "/items/3", `{"name":"Mine"}`, "2")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", body["error"])

	rec, body = do(e, http.MethodGet, "/items/3", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, body["lastBooking"])
	require.Equal(t, []any{}, body["comments"])

	rec, _ = do(e, http.MethodPost, "/items/3/comment", `{"text":"great"}`, "2")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookings(t *testing.T) {
	e, m := newServer(t)
	var gotState string
	var gotPage model.Page
	m.bookings.listFn = func(ctx context.Context, userID int64, state string, p model.Page) ([]model.Booking, error) {
		gotState, gotPage = state, p
		if state == "SOON" {
			return nil, apperr.Newf(apperr.ErrUnsupportedStatus, "Unknown state: %s", state)
		}
		return []model.Booking{}, nil
	}
	m.bookings.decideFn = func(ctx context.Context, ownerID, bookingID int64, approve bool) (*model.Booking, error) {
		require.True(t, approve)
		return &model.Booking{ID: bookingID, Status: model.BookingApproved}, nil
	}
	m.bookings.getFn = func(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
		return nil, apperr.Forbidden("not yours")
	}

	rec, body := do(e, http.MethodPost, "/bookings",
		`{"itemId":3,"start":"2030-01-01T10:00:00Z","end":"2030-01-01T12:00:00Z"}`, "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "WAITING", body["status"])

	rec, body = do(e, http.MethodPost, "/bookings",
		`{"itemId":3,"start":"2030-01-01T10:00:00","end":"2030-01-02T10:00:00"}`, "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2030-01-01T10:00:00Z", body["start"])
	require.Equal(t, "2030-01-02T10:00:00Z", body["end"])

	rec, body = do(e, http.MethodPost, "/bookings", `{"itemId":3,"start":"soon","end":"later"}`, "2")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid body", body["message"])

	rec, body = do(e, http.MethodPost, "/bookings", `{"itemId":3}`, "2")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "start: required, end: required", body["message"])

	rec, _ = do(e, http.MethodGet, "/bookings", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ALL", gotState)
	require.Equal(t, model.Page{Size: 10}, gotPage)

	rec, _ = do(e, http.MethodGet, "/bookings/owner?state=FUTURE&from=4&size=2", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "FUTURE", gotState)
	require.Equal(t, model.Page{From: 4, Size: 2}, gotPage)

	rec, body = do(e, http.MethodGet, "/bookings?state=SOON", "", "2")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Unknown state: UNSUPPORTED_STATUS", body["error"])
	require.Equal(t, "Unknown state: SOON", body["message"])

	rec, _ = do(e, http.MethodPatch, "/bookings/5?approved=maybe", "", "1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(e, http.MethodPatch, "/bookings/5?approved=true", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "APPROVED", body["status"])

	// someone else's booking looks exactly like a missing one
	rec, body = do(e, http.MethodGet, "/bookings/5", "", "3")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", body["error"])
	require.Equal(t, "not found", body["message"])
}

func TestRequests(t *testing.T) {
	e, m := newServer(t)
	calls := 0
	m.requests.allFn = func(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error) {
		calls++
		require.Equal(t, model.Page{Size: model.DefaultRequestSize}, p)
		return nil, errors.New("db down")
	}

	rec, _ := do(e, http.MethodGet, "/requests/all?from=-1", "", "1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, calls)

	rec, body := do(e, http.MethodGet, "/requests/all", "", "1")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", body["message"])
	require.Equal(t, 1, calls)

	rec, body = do(e, http.MethodPost, "/requests", `{"description":"need a ladder"}`, "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{}, body["items"])

	rec, _ = do(e, http.MethodPost, "/requests", `{"description":" "}`, "1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(e, http.MethodGet, "/requests/8", "", "1")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
