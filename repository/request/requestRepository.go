package requestrepo

import (
	"context"
	"fmt"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	// Others pages through requests made by anyone except userID.
	Others(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const requestCols = `id, description, requester_id, created_at`

func (r *repo) Create(ctx context.Context, rq *model.ItemRequest) error {
	q := r.db.Rebind(`
		INSERT INTO requests (description, requester_id, created_at)
		VALUES (?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, q, rq.Description, rq.RequesterID, rq.Created.UTC()).Scan(&rq.ID)
	if err != nil {
		return fmt.Errorf("requestrepo.Create: %w", err)
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	var rq model.ItemRequest
	q := r.db.Rebind(`SELECT ` + requestCols + ` FROM requests WHERE id = ?`)
	if err := r.db.GetContext(ctx, &rq, q, id); err != nil {
		return nil, fmt.Errorf("requestrepo.ByID: %w", err)
	}
	rq.Created = rq.Created.UTC()
	return &rq, nil
}

func (r *repo) ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	q := r.db.Rebind(`
		SELECT ` + requestCols + `
		FROM requests
		WHERE requester_id = ?
		ORDER BY created_at DESC, id DESC`)
	if err := r.db.SelectContext(ctx, &out, q, requesterID); err != nil {
		return nil, fmt.Errorf("requestrepo.ByRequester: %w", err)
	}
	return utc(out), nil
}

func (r *repo) Others(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	q := r.db.Rebind(`
		SELECT ` + requestCols + `
		FROM requests
		WHERE requester_id <> ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &out, q, userID, p.Size, p.From); err != nil {
		return nil, fmt.Errorf("requestrepo.Others: %w", err)
	}
	return utc(out), nil
}

func utc(rs []model.ItemRequest) []model.ItemRequest {
	for i := range rs {
		rs[i].Created = rs[i].Created.UTC()
	}
	return rs
}
