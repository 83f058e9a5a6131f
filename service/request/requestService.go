package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"shareit/model"
	"shareit/util/apperr"
)

const maxDescription = 200

type Repo interface {
	Create(ctx context.Context, rq *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	Others(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type ItemRepo interface {
	ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, req model.CreateRequestReq) (*model.ItemRequest, error)
	// Own lists the caller's requests, newest first, with the items that answer them.
	Own(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	// All pages through everybody else's requests.
	All(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error)
	Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error)
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

func (s *service) Create(ctx context.Context, userID int64, req model.CreateRequestReq) (*model.ItemRequest, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("description must not be blank")
	}
	if utf8.RuneCountInString(req.Description) > maxDescription {
		return nil, apperr.Validation("description must be at most 200 characters")
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rq := &model.ItemRequest{
		Description: req.Description,
		RequesterID: userID,
		Created:     s.now().UTC(),
		Items:       []model.RequestItem{},
	}
	if err := s.r.Create(ctx, rq); err != nil {
		return nil, err
	}
	return rq, nil
}

func (s *service) Own(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rs, err := s.r.ByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, rs)
}

func (s *service) All(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rs, err := s.r.Others(ctx, userID, p)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, rs)
}

func (s *service) Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	rq, err := s.r.ByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	rs, err := s.withItems(ctx, []model.ItemRequest{*rq})
	if err != nil {
		return nil, err
	}
	return &rs[0], nil
}

func (s *service) withItems(ctx context.Context, rs []model.ItemRequest) ([]model.ItemRequest, error) {
	if len(rs) == 0 {
		return rs, nil
	}
	ids := make([]int64, len(rs))
	for i := range rs {
		ids[i] = rs[i].ID
		rs[i].Items = []model.RequestItem{}
	}
	items, err := s.items.ByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	idx := make(map[int64]int, len(rs))
	for i := range rs {
		idx[rs[i].ID] = i
	}
	for _, it := range items {
		if i, ok := idx[it.RequestID]; ok {
			rs[i].Items = append(rs[i].Items, it)
		}
	}
	return rs, nil
}

func (s *service) userExists(ctx context.Context, id int64) error {
	_, err := s.users.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("user not found")
	}
	return err
}
