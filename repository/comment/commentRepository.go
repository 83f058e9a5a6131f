package commentrepo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
	ByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Comment) error {
	q := r.db.Rebind(`
		INSERT INTO comments (text, item_id, author_id, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, q, c.Text, c.ItemID, c.AuthorID, c.Created.UTC()).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("commentrepo.Create: %w", err)
	}
	return nil
}

// ByItems returns comments of the given items, oldest first.
func (r *repo) ByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error) {
	out := []model.Comment{}
	if len(itemIDs) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`
		SELECT c.id, c.text, c.item_id, c.author_id, u.name AS author_name, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id IN (?)
		ORDER BY c.created_at, c.id`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("commentrepo.ByItems: %w", err)
	}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("commentrepo.ByItems: %w", err)
	}
	for i := range out {
		out[i].Created = out[i].Created.UTC()
	}
	return out, nil
}
