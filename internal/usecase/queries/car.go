package queries

import (
	"context"

	"carshare/internal/infra"
	"carshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCarNotFound = errs.New("car not found")

type CarFilters struct {
	Location      *string
	AvailableOnly bool
}

type CarQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CarView, error)
	List(ctx context.Context, filters CarFilters, limit, offset int) ([]*CarView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*CarView, error)
}

type CarReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CarView, error)
	FindPaginated(ctx context.Context, filters CarFilters, limit, offset int32) ([]*CarView, error)
	FindByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*CarView, error)
}

type carQueriesImpl struct {
	readStore CarReadStore
}

func NewCarQueries(readStore CarReadStore) CarQueries {
	return &carQueriesImpl{readStore: readStore}
}

func (q *carQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CarView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *carQueriesImpl) List(ctx context.Context, filters CarFilters, limit, offset int) ([]*CarView, error) {
	limit = ValidateLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return q.readStore.FindPaginated(ctx, filters, int32(limit), int32(offset))
}

func (q *carQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*CarView, error) {
	limit = ValidateLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return q.readStore.FindByOwnerPaginated(ctx, ownerID, int32(limit), int32(offset))
}
