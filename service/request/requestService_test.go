package requestsvc

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/util/apperr"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type repoMock struct {
	createFn      func(ctx context.Context, rq *model.ItemRequest) error
	byIDFn        func(ctx context.Context, id int64) (*model.ItemRequest, error)
	byRequesterFn func(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	othersFn      func(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error)
}

func (m *repoMock) Create(ctx context.Context, rq *model.ItemRequest) error {
	return m.createFn(ctx, rq)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	return m.byRequesterFn(ctx, requesterID)
}
func (m *repoMock) Others(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error) {
	return m.othersFn(ctx, userID, p)
}

type usersMock map[int64]bool

func (m usersMock) ByID(_ context.Context, id int64) (*model.User, error) {
	if !m[id] {
		return nil, fmt.Errorf("userrepo.ByID: %w", sql.ErrNoRows)
	}
	return &model.User{ID: id}, nil
}

type itemsFn func(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error)

func (f itemsFn) ByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error) {
	return f(ctx, requestIDs)
}

func newService(r *repoMock, items itemsFn) *service {
	if items == nil {
		items = func(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error) { return nil, nil }
	}
	return &service{r: r, users: usersMock{1: true, 2: true}, items: items, now: func() time.Time { return now }}
}

func TestCreate(t *testing.T) {
	s := newService(&repoMock{
		createFn: func(ctx context.Context, rq *model.ItemRequest) error {
			rq.ID = 11
			return nil
		},
	}, nil)
	ctx := context.Background()

	rq, err := s.Create(ctx, 1, model.CreateRequestReq{Description: "need a ladder"})
	require.NoError(t, err)
	require.Equal(t, int64(11), rq.ID)
	require.Equal(t, int64(1), rq.RequesterID)
	require.Equal(t, now, rq.Created)
	require.NotNil(t, rq.Items)

	_, err = s.Create(ctx, 1, model.CreateRequestReq{Description: "  "})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	_, err = s.Create(ctx, 1, model.CreateRequestReq{Description: strings.Repeat("я", 201)})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	_, err = s.Create(ctx, 1, model.CreateRequestReq{Description: strings.Repeat("я", 200)})
	require.NoError(t, err)
	_, err = s.Create(ctx, 3, model.CreateRequestReq{Description: "ladder"})
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestOwn_AttachesItems(t *testing.T) {
	s := newService(&repoMock{
		byRequesterFn: func(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
			return []model.ItemRequest{{ID: 2, RequesterID: requesterID}, {ID: 1, RequesterID: requesterID}}, nil
		},
	}, func(ctx context.Context, requestIDs []int64) ([]model.RequestItem, error) {
		require.ElementsMatch(t, []int64{1, 2}, requestIDs)
		return []model.RequestItem{
			{ID: 10, Name: "Ladder", RequestID: 1},
			{ID: 11, Name: "Step stool", RequestID: 1},
		}, nil
	})

	rs, err := s.Own(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	require.Empty(t, rs[0].Items)
	require.NotNil(t, rs[0].Items)
	require.Len(t, rs[1].Items, 2)
	require.Equal(t, "Ladder", rs[1].Items[0].Name)

	_, err = s.Own(context.Background(), 5)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}

func TestAll_PagesOthers(t *testing.T) {
	var gotPage model.Page
	s := newService(&repoMock{
		othersFn: func(ctx context.Context, userID int64, p model.Page) ([]model.ItemRequest, error) {
			require.Equal(t, int64(2), userID)
			gotPage = p
			return []model.ItemRequest{}, nil
		},
	}, nil)
	ctx := context.Background()

	rs, err := s.All(ctx, 2, model.Page{From: 3, Size: 7})
	require.NoError(t, err)
	require.Empty(t, rs)
	require.Equal(t, model.Page{From: 3, Size: 7}, gotPage)

	_, err = s.All(ctx, 2, model.Page{From: 0, Size: 101})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
}

func TestGet(t *testing.T) {
	s := newService(&repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
			if id != 4 {
				return nil, fmt.Errorf("requestrepo.ByID: %w", sql.ErrNoRows)
			}
			return &model.ItemRequest{ID: 4, RequesterID: 1, Description: "tent"}, nil
		},
	}, nil)
	ctx := context.Background()

	rq, err := s.Get(ctx, 2, 4)
	require.NoError(t, err)
	require.Equal(t, "tent", rq.Description)
	require.NotNil(t, rq.Items)

	_, err = s.Get(ctx, 2, 5)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
	_, err = s.Get(ctx, 9, 4)
	require.Equal(t, apperr.ErrNotFound, apperr.Code(err))
}
