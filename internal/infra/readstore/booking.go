package readstore

import (
	"context"

	"carshare/internal/infra"
	"carshare/internal/infra/db"
	"carshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDSQL = `
SELECT b.id, b.car_id, c.make, c.model, b.renter_id, u.email, b.owner_id,
       b.start_date, b.end_date, b.status, b.total_price_cents,
       b.payment_ref, b.checkout_session_ref, b.created_at, b.updated_at
FROM bookings b
JOIN cars c ON c.id = b.car_id
JOIN users u ON u.id = b.renter_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID, &view.CarID, &view.CarMake, &view.CarModel,
		&view.RenterID, &view.RenterEmail, &view.OwnerID,
		&view.StartDate, &view.EndDate, &view.Status, &view.TotalPriceCents,
		&view.PaymentRef, &view.CheckoutSessionRef, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &view, nil
}

const listBookingsByRenterSQL = `
SELECT b.id, b.car_id, c.make, c.model,
       b.start_date, b.end_date, b.status, b.total_price_cents, b.created_at
FROM bookings b
JOIN cars c ON c.id = b.car_id
WHERE b.renter_id = $1
ORDER BY b.start_date DESC, b.id
LIMIT $2 OFFSET $3`

func (r *BookingReadStore) FindByRenterPaginated(ctx context.Context, renterID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	return r.listBookings(ctx, listBookingsByRenterSQL, renterID, limit, offset, "failed to list bookings by renter")
}

const listBookingsByOwnerSQL = `
SELECT b.id, b.car_id, c.make, c.model,
       b.start_date, b.end_date, b.status, b.total_price_cents, b.created_at
FROM bookings b
JOIN cars c ON c.id = b.car_id
WHERE b.owner_id = $1
ORDER BY b.start_date DESC, b.id
LIMIT $2 OFFSET $3`

func (r *BookingReadStore) FindByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	return r.listBookings(ctx, listBookingsByOwnerSQL, ownerID, limit, offset, "failed to list bookings by owner")
}

func (r *BookingReadStore) listBookings(ctx context.Context, sql string, userID uuid.UUID, limit, offset int32, errMsg string) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, sql, userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.CarID, &item.CarMake, &item.CarModel,
			&item.StartDate, &item.EndDate, &item.Status, &item.TotalPriceCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(errMsg, err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(errMsg, err)
	}
	return items, nil
}
