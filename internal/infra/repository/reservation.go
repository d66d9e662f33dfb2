package repository

import (
	"context"

	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/infra"
	"resort-reservations/internal/infra/repository/converter"
	"resort-reservations/internal/infra/sqlc"
	"resort-reservations/internal/pkg/pgconv"
	"resort-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	queries *sqlc.Queries
	db      sqlc.DBTX
}

func NewReservationRepository(queries *sqlc.Queries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

// Create runs the insert under a savepoint: a unique or exclusion violation
// aborts the enclosing Postgres transaction otherwise, and the caller's
// confirmation-code retry needs the transaction alive for the next attempt.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	params := converter.ReservationToCreateParams(res)

	if _, err := r.db.Exec(ctx, "SAVEPOINT create_reservation"); err != nil {
		return nil, infra.WrapRepoErr("failed to set savepoint", err)
	}

	row, err := r.queries.CreateReservation(ctx, r.db, params)
	if err != nil {
		if _, rbErr := r.db.Exec(ctx, "ROLLBACK TO SAVEPOINT create_reservation"); rbErr != nil {
			return nil, infra.WrapRepoErr("failed to roll back savepoint", rbErr)
		}
		return nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	if _, err := r.db.Exec(ctx, "RELEASE SAVEPOINT create_reservation"); err != nil {
		return nil, infra.WrapRepoErr("failed to release savepoint", err)
	}

	return rowToDomain(row)
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToDomain(row)
}

func (r *ReservationRepository) LockResource(ctx context.Context, resourceID string) error {
	if err := r.queries.AcquireResourceLock(ctx, r.db, resourceID); err != nil {
		return infra.WrapRepoErr("failed to acquire resource lock", err)
	}
	return nil
}

func (r *ReservationRepository) FindConflicts(ctx context.Context, resourceID string, period reservation.StayPeriod, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	params := sqlc.FindConflictingReservationsParams{
		ResourceID: resourceID,
		CheckIn:    pgconv.TimeToPgtype(period.CheckIn()),
		CheckOut:   pgconv.TimeToPgtype(period.CheckOut()),
		ExcludeID:  pgconv.UUIDPtrToPgtype(excludeID),
	}

	rows, err := r.queries.FindConflictingReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find conflicting reservations", err)
	}

	return rowsToDomain(rows)
}

func (r *ReservationRepository) UpdateFields(ctx context.Context, id uuid.UUID, changes shared.ReservationChanges) (*reservation.Reservation, error) {
	params := sqlc.UpdateReservationFieldsParams{
		ID:                 id,
		GuestName:          pgconv.StringPtrToPgtype(changes.GuestName),
		GuestEmail:         pgconv.StringPtrToPgtype(changes.GuestEmail),
		GuestPhone:         pgconv.StringPtrToPgtype(changes.GuestPhone),
		CheckIn:            pgconv.TimePtrToPgtype(changes.CheckIn),
		CheckOut:           pgconv.TimePtrToPgtype(changes.CheckOut),
		GuestCount:         pgconv.Int32PtrToPgtype(changes.GuestCount),
		TotalAmountCents:   pgconv.Int64PtrToPgtype(changes.TotalAmountCents),
		DepositAmountCents: pgconv.Int64PtrToPgtype(changes.DepositAmountCents),
		SpecialRequests:    pgconv.StringPtrToPgtype(changes.SpecialRequests),
		Notes:              pgconv.StringPtrToPgtype(changes.Notes),
	}

	row, err := r.queries.UpdateReservationFields(ctx, r.db, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update reservation", err)
	}

	return rowToDomain(row)
}

func (r *ReservationRepository) SaveState(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	params := converter.ReservationToStateParams(res)

	row, err := r.queries.SaveReservationState(ctx, r.db, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to save reservation state", err)
	}

	return rowToDomain(row)
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.queries.DeleteReservation(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func rowToDomain(row sqlc.Reservation) (*reservation.Reservation, error) {
	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild reservation from row", err)
	}
	return res, nil
}

func rowsToDomain(rows []sqlc.Reservation) ([]*reservation.Reservation, error) {
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		res, err := rowToDomain(row)
		if err != nil {
			return nil, err
		}
		result[i] = res
	}
	return result, nil
}
