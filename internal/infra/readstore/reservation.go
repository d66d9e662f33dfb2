package readstore

import (
	"context"
	"time"

	"resort-reservations/internal/infra"
	"resort-reservations/internal/infra/sqlc"
	"resort-reservations/internal/pkg/pgconv"
	"resort-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	queries *sqlc.Queries
	db      sqlc.DBTX
}

func NewReservationReadStore(q *sqlc.Queries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: q,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row), nil
}

func (r *ReservationReadStore) FindByCode(ctx context.Context, code string) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by code", err)
	}

	return rowToReservationView(row), nil
}

func (r *ReservationReadStore) FindAll(ctx context.Context) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservations(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindByGuest(ctx context.Context, guestID string) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByGuest(ctx, r.db, guestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by guest", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindByResource(ctx context.Context, resourceID string) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByResource(ctx, r.db, resourceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by resource", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindByStatus(ctx context.Context, status string) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByStatus(ctx, r.db, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by status", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindByType(ctx context.Context, reservationType string) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListReservationsByType(ctx, r.db, reservationType)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by type", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindByDateRange(ctx context.Context, start, end time.Time) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListReservationsByDateRangeParams{
		RangeStart: pgconv.TimeToPgtype(start),
		RangeEnd:   pgconv.TimeToPgtype(end),
	}

	rows, err := r.queries.ListReservationsByDateRange(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by date range", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindUpcomingByGuest(ctx context.Context, guestID string, now time.Time) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListUpcomingReservationsByGuestParams{
		GuestID: guestID,
		Now:     pgconv.TimeToPgtype(now),
	}

	rows, err := r.queries.ListUpcomingReservationsByGuest(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming reservations", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindCheckInsBetween(ctx context.Context, dayStart, dayEnd time.Time) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListTodayCheckInsParams{
		DayStart: pgconv.TimeToPgtype(dayStart),
		DayEnd:   pgconv.TimeToPgtype(dayEnd),
	}

	rows, err := r.queries.ListTodayCheckIns(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list today's check-ins", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindCheckOutsBetween(ctx context.Context, dayStart, dayEnd time.Time) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListTodayCheckOutsParams{
		DayStart: pgconv.TimeToPgtype(dayStart),
		DayEnd:   pgconv.TimeToPgtype(dayEnd),
	}

	rows, err := r.queries.ListTodayCheckOuts(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list today's check-outs", err)
	}
	return rowsToListItems(rows), nil
}

func (r *ReservationReadStore) FindPending(ctx context.Context) ([]*queries.ReservationListItem, error) {
	rows, err := r.queries.ListPendingReservations(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending reservations", err)
	}
	return rowsToListItems(rows), nil
}

func rowToReservationView(row sqlc.Reservation) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 row.ID,
		ConfirmationCode:   row.ConfirmationCode,
		Type:               row.Type,
		ResourceID:         row.ResourceID,
		ResourceName:       row.ResourceName,
		GuestID:            row.GuestID,
		GuestName:          row.GuestName,
		GuestEmail:         row.GuestEmail,
		GuestPhone:         pgconv.StringPtrFromPgtype(row.GuestPhone),
		CheckIn:            pgconv.TimeFromPgtype(row.CheckIn),
		CheckOut:           pgconv.TimeFromPgtype(row.CheckOut),
		GuestCount:         row.GuestCount,
		TotalAmountCents:   row.TotalAmountCents,
		DepositAmountCents: row.DepositAmountCents,
		DepositPaid:        row.DepositPaid,
		SpecialRequests:    pgconv.StringPtrFromPgtype(row.SpecialRequests),
		Notes:              pgconv.StringPtrFromPgtype(row.Notes),
		Status:             row.Status,
		CheckedInAt:        pgconv.TimePtrFromPgtype(row.CheckedInAt),
		CheckedInBy:        pgconv.UUIDPtrFromPgtype(row.CheckedInBy),
		CheckedOutAt:       pgconv.TimePtrFromPgtype(row.CheckedOutAt),
		CheckedOutBy:       pgconv.UUIDPtrFromPgtype(row.CheckedOutBy),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CancelledBy:        pgconv.UUIDPtrFromPgtype(row.CancelledBy),
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		BookedBy:           row.BookedBy,
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func rowToListItem(row sqlc.Reservation) *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:               row.ID,
		ConfirmationCode: row.ConfirmationCode,
		Type:             row.Type,
		ResourceID:       row.ResourceID,
		ResourceName:     row.ResourceName,
		GuestName:        row.GuestName,
		CheckIn:          pgconv.TimeFromPgtype(row.CheckIn),
		CheckOut:         pgconv.TimeFromPgtype(row.CheckOut),
		GuestCount:       row.GuestCount,
		Status:           row.Status,
	}
}

func rowsToListItems(rows []sqlc.Reservation) []*queries.ReservationListItem {
	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		result[i] = rowToListItem(row)
	}
	return result
}
