package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/model"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, p model.Page) ([]model.Item, error)
	Search(ctx context.Context, text string, p model.Page) ([]model.Item, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type RequestRepo interface {
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type BookingRepo interface {
	ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	HasApprovedStartedBefore(ctx context.Context, bookerID, itemID int64, t time.Time) (bool, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	ByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (*model.Item, error)
	// Get shows comments to everyone and last/next bookings to the owner only.
	Get(ctx context.Context, userID, itemID int64) (*model.ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, p model.Page) ([]model.ItemView, error)
	Search(ctx context.Context, text string, p model.Page) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, req model.CreateCommentReq) (*model.Comment, error)
}

type Deps struct {
	Items    Repo
	Users    UserRepo
	Requests RequestRepo
	Bookings BookingRepo
	Comments CommentRepo
}

type service struct {
	Deps
	now func() time.Time
}

func New(d Deps) Service {
	return &service{Deps: d, now: time.Now}
}

func (s *service) Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("name and description must not be blank")
	}
	if req.Available == nil {
		return nil, apperr.Validation("available is required")
	}
	if _, err := s.Users.ByID(ctx, ownerID); err != nil {
		return nil, notFound(err, "user not found")
	}
	if req.RequestID != nil {
		if _, err := s.Requests.ByID(ctx, *req.RequestID); err != nil {
			return nil, notFound(err, "request not found")
		}
	}

	it := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.Items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (*model.Item, error) {
	it, err := s.Items.ByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "item not found")
	}
	if it.OwnerID != ownerID {
		return nil, apperr.Forbidden("only the owner can edit an item")
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperr.Validation("name must not be blank")
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, apperr.Validation("description must not be blank")
		}
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}
	if err := s.Items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, userID, itemID int64) (*model.ItemView, error) {
	it, err := s.Items.ByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "item not found")
	}
	views, err := s.views(ctx, userID, []model.Item{*it})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, p model.Page) ([]model.ItemView, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Users.ByID(ctx, ownerID); err != nil {
		return nil, notFound(err, "user not found")
	}
	items, err := s.Items.ByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, ownerID, items)
}

func (s *service) Search(ctx context.Context, text string, p model.Page) ([]model.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.Items.Search(ctx, text, p)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, req model.CreateCommentReq) (*model.Comment, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperr.Validation("text must not be blank")
	}
	it, err := s.Items.ByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, "item not found")
	}
	author, err := s.Users.ByID(ctx, authorID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	now := s.now().UTC()
	ok, err := s.Bookings.HasApprovedStartedBefore(ctx, authorID, it.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("user has not rented this item")
	}

	c := &model.Comment{
		Text:       req.Text,
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// views attaches comments to every item, and last/next bookings to the
// ones viewerID owns. Both lookups are batched over all items.
func (s *service) views(ctx context.Context, viewerID int64, items []model.Item) ([]model.ItemView, error) {
	out := make([]model.ItemView, len(items))
	if len(items) == 0 {
		return out, nil
	}

	ids := make([]int64, len(items))
	var owned []int64
	for i, it := range items {
		ids[i] = it.ID
		out[i] = model.ItemView{Item: it, Comments: []model.Comment{}}
		if it.OwnerID == viewerID {
			owned = append(owned, it.ID)
		}
	}

	comments, err := s.Comments.ByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := make(map[int64][]model.Comment)
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}

	approved := make(map[int64][]model.Booking)
	if len(owned) > 0 {
		bs, err := s.Bookings.ApprovedByItems(ctx, owned)
		if err != nil {
			return nil, err
		}
		for _, b := range bs {
			approved[b.ItemID] = append(approved[b.ItemID], b)
		}
	}

	now := s.now()
	for i := range out {
		if cs, ok := byItem[out[i].ID]; ok {
			out[i].Comments = cs
		}
		if out[i].OwnerID != viewerID {
			continue
		}
		last, next := bookingsvc.Adjacent(approved[out[i].ID], now)
		if last != nil {
			out[i].LastBooking = last.Short()
		}
		if next != nil {
			out[i].NextBooking = next.Short()
		}
	}
	return out, nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}
