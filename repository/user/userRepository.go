package userrepo

import (
	"context"
	"fmt"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	q := r.db.Rebind(`
		INSERT INTO users (name, email)
		VALUES (?, ?)
		RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, q, u.Name, u.Email).Scan(&u.ID); err != nil {
		return fmt.Errorf("userrepo.Create: %w", err)
	}
	return nil
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	q := r.db.Rebind(`
		UPDATE users
		SET name = ?, email = ?
		WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.ID); err != nil {
		return fmt.Errorf("userrepo.Update: %w", err)
	}
	return nil
}

// ByID returns sql.ErrNoRows (wrapped) when the user does not exist.
func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	q := r.db.Rebind(`SELECT id, name, email FROM users WHERE id = ?`)
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, fmt.Errorf("userrepo.ByID: %w", err)
	}
	return &u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name, email FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("userrepo.List: %w", err)
	}
	return out, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("userrepo.Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
