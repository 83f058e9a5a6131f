package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"shareit/model"
	userrepo "shareit/repository/user"
	"shareit/util/apperr"
	"shareit/util/database"
)

type Service interface {
	Create(ctx context.Context, req model.CreateUserReq) (*model.User, error)
	Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur} }

func (s *service) Create(ctx context.Context, req model.CreateUserReq) (*model.User, error) {
	if err := checkName(req.Name); err != nil {
		return nil, err
	}
	if err := checkEmail(req.Email); err != nil {
		return nil, err
	}
	u := &model.User{Name: req.Name, Email: req.Email}
	if err := s.ur.Create(ctx, u); err != nil {
		return nil, mapDuplicateErr(err)
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, req model.UpdateUserReq) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := checkName(*req.Name); err != nil {
			return nil, err
		}
		u.Name = *req.Name
	}
	if req.Email != nil {
		if err := checkEmail(*req.Email); err != nil {
			return nil, err
		}
		u.Email = *req.Email
	}
	if err := s.ur.Update(ctx, u); err != nil {
		return nil, mapDuplicateErr(err)
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.ur.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user not found")
	}
	return nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name must not be blank")
	}
	return nil
}

func checkEmail(email string) error {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return apperr.Validation("email must contain @")
	}
	return nil
}

func mapDuplicateErr(err error) error {
	if database.IsUniqueViolation(err) {
		return apperr.Conflict("email already registered")
	}
	return err
}
