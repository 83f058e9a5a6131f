package bookingrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	// SetStatus moves a booking from one status to another and reports
	// whether the row was still in the expected status.
	SetStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error)

	ByBooker(ctx context.Context, bookerID int64, f model.BookingFilter) ([]model.Booking, error)
	ByOwner(ctx context.Context, ownerID int64, f model.BookingFilter) ([]model.Booking, error)

	ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	HasApprovedStartedBefore(ctx context.Context, bookerID, itemID int64, t time.Time) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const bookingSelect = `
	SELECT b.id, b.start_at, b.end_at, b.status, b.item_id, b.booker_id,
	       i.name, i.owner_id, u.name
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (model.Booking, error) {
	var (
		b      model.Booking
		status string
	)
	err := s.Scan(
		&b.ID, &b.Start, &b.End, &status, &b.ItemID, &b.BookerID,
		&b.Item.Name, &b.OwnerID, &b.Booker.Name,
	)
	if err != nil {
		return b, err
	}
	b.Status = model.BookingStatus(status)
	b.Start, b.End = b.Start.UTC(), b.End.UTC()
	b.Item.ID = b.ItemID
	b.Booker.ID = b.BookerID
	return b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	q := r.db.Rebind(`
		INSERT INTO bookings (start_at, end_at, item_id, booker_id, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, q,
		b.Start.UTC(), b.End.UTC(), b.ItemID, b.BookerID, string(b.Status),
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("bookingrepo.Create: %w", err)
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	row := r.db.QueryRowxContext(ctx, r.db.Rebind(bookingSelect+` WHERE b.id = ?`), id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("bookingrepo.ByID: %w", err)
	}
	return &b, nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	q := r.db.Rebind(`
		UPDATE bookings
		SET status = ?
		WHERE id = ?
		  AND status = ?`)
	res, err := r.db.ExecContext(ctx, q, string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("bookingrepo.SetStatus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bookingrepo.SetStatus: %w", err)
	}
	return n == 1, nil
}

func (r *repo) ByBooker(ctx context.Context, bookerID int64, f model.BookingFilter) ([]model.Booking, error) {
	out, err := r.list(ctx, "b.booker_id = ?", bookerID, f)
	if err != nil {
		return nil, fmt.Errorf("bookingrepo.ByBooker: %w", err)
	}
	return out, nil
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, f model.BookingFilter) ([]model.Booking, error) {
	out, err := r.list(ctx, "i.owner_id = ?", ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("bookingrepo.ByOwner: %w", err)
	}
	return out, nil
}

func (r *repo) list(ctx context.Context, subject string, subjectID int64, f model.BookingFilter) ([]model.Booking, error) {
	q := bookingSelect + ` WHERE ` + subject
	args := []any{subjectID}
	now := f.Now.UTC()

	switch f.State {
	case model.StatePast:
		q += ` AND b.end_at < ?`
		args = append(args, now)
	case model.StateFuture:
		q += ` AND b.start_at > ?`
		args = append(args, now)
	case model.StateCurrent:
		q += ` AND b.start_at <= ? AND b.end_at >= ?`
		args = append(args, now, now)
	case model.StateWaiting:
		q += ` AND b.status = ?`
		args = append(args, string(model.BookingWaiting))
	case model.StateRejected:
		q += ` AND b.status = ?`
		args = append(args, string(model.BookingRejected))
	}

	q += ` ORDER BY b.start_at DESC, b.id DESC LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	return r.query(ctx, r.db.Rebind(q), args...)
}

func (r *repo) ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return []model.Booking{}, nil
	}
	q, args, err := sqlx.In(bookingSelect+`
		WHERE b.item_id IN (?)
		  AND b.status = ?
		ORDER BY b.start_at`, itemIDs, string(model.BookingApproved))
	if err != nil {
		return nil, fmt.Errorf("bookingrepo.ApprovedByItems: %w", err)
	}
	out, err := r.query(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("bookingrepo.ApprovedByItems: %w", err)
	}
	return out, nil
}

func (r *repo) HasApprovedStartedBefore(ctx context.Context, bookerID, itemID int64, t time.Time) (bool, error) {
	var n int
	q := r.db.Rebind(`
		SELECT COUNT(1)
		FROM bookings
		WHERE booker_id = ?
		  AND item_id = ?
		  AND status = ?
		  AND start_at < ?`)
	if err := r.db.GetContext(ctx, &n, q, bookerID, itemID, string(model.BookingApproved), t.UTC()); err != nil {
		return false, fmt.Errorf("bookingrepo.HasApprovedStartedBefore: %w", err)
	}
	return n > 0, nil
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
