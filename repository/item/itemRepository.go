package itemrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, p model.Page) ([]model.Item, error)
	Search(ctx context.Context, text string, p model.Page) ([]model.Item, error)
	ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const itemCols = `id, name, description, available, owner_id, request_id`

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	q := r.db.Rebind(`
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("itemrepo.Create: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns. Owner and request link never change.
func (r *repo) Update(ctx context.Context, it *model.Item) error {
	q := r.db.Rebind(`
		UPDATE items
		SET name = ?, description = ?, available = ?
		WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, q, it.Name, it.Description, it.Available, it.ID); err != nil {
		return fmt.Errorf("itemrepo.Update: %w", err)
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	q := r.db.Rebind(`SELECT ` + itemCols + ` FROM items WHERE id = ?`)
	if err := r.db.GetContext(ctx, &it, q, id); err != nil {
		return nil, fmt.Errorf("itemrepo.ByID: %w", err)
	}
	return &it, nil
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, p model.Page) ([]model.Item, error) {
	out := []model.Item{}
	q := r.db.Rebind(`
		SELECT ` + itemCols + `
		FROM items
		WHERE owner_id = ?
		ORDER BY id
		LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &out, q, ownerID, p.Size, p.From); err != nil {
		return nil, fmt.Errorf("itemrepo.ByOwner: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches text case-insensitively against name or description of
// available items only.
func (r *repo) Search(ctx context.Context, text string, p model.Page) ([]model.Item, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
	out := []model.Item{}
	q := r.db.Rebind(`
		SELECT ` + itemCols + `
		FROM items
		WHERE available = ?
		  AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')
		ORDER BY id
		LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &out, q, true, pattern, pattern, p.Size, p.From); err != nil {
		return nil, fmt.Errorf("itemrepo.Search: %w", err)
	}
	return out, nil
}

func (r *repo) ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error) {
	out := []model.RequestItem{}
	if len(requestIDs) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id IN (?)
		ORDER BY id`, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("itemrepo.ByRequestIDs: %w", err)
	}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("itemrepo.ByRequestIDs: %w", err)
	}
	return out, nil
}
