package readstore

import (
	"context"

	"carshare/internal/infra"
	"carshare/internal/infra/db"
	"carshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CarReadStore struct {
	db db.DBTX
}

func NewCarReadStore(dbtx db.DBTX) *CarReadStore {
	return &CarReadStore{db: dbtx}
}

const carColumns = `id, owner_id, make, model, year, daily_rate_cents, location, description, is_available, created_at, updated_at`

const findCarByIDSQL = `
SELECT ` + carColumns + `
FROM cars
WHERE id = $1`

func (r *CarReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CarView, error) {
	row := r.db.QueryRow(ctx, findCarByIDSQL, id)

	view, err := scanCarView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("car not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find car by ID", err)
	}
	return view, nil
}

// Listing filters by location and availability; $1/$2 may be NULL/false to
// skip a filter.
const listCarsSQL = `
SELECT ` + carColumns + `
FROM cars
WHERE ($1::text IS NULL OR location = $1)
  AND (NOT $2::bool OR is_available)
ORDER BY created_at DESC, id
LIMIT $3 OFFSET $4`

func (r *CarReadStore) FindPaginated(ctx context.Context, filters queries.CarFilters, limit, offset int32) ([]*queries.CarView, error) {
	rows, err := r.db.Query(ctx, listCarsSQL, filters.Location, filters.AvailableOnly, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cars", err)
	}
	defer rows.Close()

	return collectCarViews(rows, "failed to list cars")
}

const listCarsByOwnerSQL = `
SELECT ` + carColumns + `
FROM cars
WHERE owner_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`

func (r *CarReadStore) FindByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*queries.CarView, error) {
	rows, err := r.db.Query(ctx, listCarsByOwnerSQL, ownerID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cars by owner", err)
	}
	defer rows.Close()

	return collectCarViews(rows, "failed to list cars by owner")
}

func scanCarView(row pgx.Row) (*queries.CarView, error) {
	var view queries.CarView
	err := row.Scan(
		&view.ID, &view.OwnerID, &view.Make, &view.Model, &view.Year,
		&view.DailyRateCents, &view.Location, &view.Description, &view.IsAvailable,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func collectCarViews(rows pgx.Rows, errMsg string) ([]*queries.CarView, error) {
	views := make([]*queries.CarView, 0)
	for rows.Next() {
		view, err := scanCarView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(errMsg, err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return views, nil
}
