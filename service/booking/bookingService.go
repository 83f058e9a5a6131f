package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shareit/model"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	SetStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error)
	ByBooker(ctx context.Context, bookerID int64, f model.BookingFilter) ([]model.Booking, error)
	ByOwner(ctx context.Context, ownerID int64, f model.BookingFilter) ([]model.Booking, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Service interface {
	// Create validates the window and books an available item in WAITING.
	Create(ctx context.Context, bookerID int64, req model.CreateBookingReq) (*model.Booking, error)

	// Decide lets the item owner approve or reject a WAITING booking.
	Decide(ctx context.Context, ownerID, bookingID int64, approve bool) (*model.Booking, error)

	// Get is visible to the booker and the item owner only.
	Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, state string, p model.Page) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, p model.Page) ([]model.Booking, error)
}

type service struct {
	r     Repo
	users UserRepo
	items ItemRepo
	now   func() time.Time
}

func New(r Repo, users UserRepo, items ItemRepo) Service {
	return &service{r: r, users: users, items: items, now: time.Now}
}

func (s *service) Create(ctx context.Context, bookerID int64, req model.CreateBookingReq) (*model.Booking, error) {
	start, end := req.Start.Std(), req.End.Std()
	if err := ValidateWindow(start, end, s.now()); err != nil {
		return nil, err
	}

	booker, err := s.users.ByID(ctx, bookerID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	item, err := s.items.ByID(ctx, req.ItemID)
	if err != nil {
		return nil, notFound(err, "item not found")
	}
	if !item.Available {
		return nil, apperr.Validation("item is not available for booking")
	}
	if item.OwnerID == bookerID {
		return nil, apperr.NotFound("owner cannot book own item")
	}

	b := &model.Booking{
		Start:    start.UTC(),
		End:      end.UTC(),
		Status:   model.BookingWaiting,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Item:     model.ItemRef{ID: item.ID, Name: item.Name},
		Booker:   model.UserRef{ID: booker.ID, Name: booker.Name},
		OwnerID:  item.OwnerID,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Decide(ctx context.Context, ownerID, bookingID int64, approve bool) (*model.Booking, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}
	if b.OwnerID != ownerID {
		return nil, apperr.Forbidden("only the item owner can approve a booking")
	}
	next, err := Decide(b.Status, approve)
	if err != nil {
		return nil, err
	}
	ok, err := s.r.SetStatus(ctx, b.ID, b.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// someone else decided between our read and the update
		return nil, apperr.Validation("status cannot be changed")
	}
	b.Status = next
	return b, nil
}

func (s *service) Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	b, err := s.r.ByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking not found")
	}
	if b.BookerID != userID && b.OwnerID != userID {
		return nil, apperr.Forbidden("booking is visible to its booker and the item owner only")
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, p model.Page) ([]model.Booking, error) {
	f, err := s.filter(ctx, bookerID, state, p)
	if err != nil {
		return nil, err
	}
	return s.r.ByBooker(ctx, bookerID, f)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, p model.Page) ([]model.Booking, error) {
	f, err := s.filter(ctx, ownerID, state, p)
	if err != nil {
		return nil, err
	}
	return s.r.ByOwner(ctx, ownerID, f)
}

func (s *service) filter(ctx context.Context, userID int64, state string, p model.Page) (model.BookingFilter, error) {
	if err := p.Validate(); err != nil {
		return model.BookingFilter{}, err
	}
	st, err := ParseState(state)
	if err != nil {
		return model.BookingFilter{}, err
	}
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return model.BookingFilter{}, notFound(err, "user not found")
	}
	return model.BookingFilter{State: st, Now: s.now(), Offset: p.From, Limit: p.Size}, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}
