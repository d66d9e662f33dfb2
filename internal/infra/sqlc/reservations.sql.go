package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, confirmation_code, type, resource_id, resource_name,
	guest_id, guest_name, guest_email, guest_phone,
	check_in, check_out, guest_count,
	total_amount_cents, deposit_amount_cents, deposit_paid,
	special_requests, notes, status,
	checked_in_at, checked_in_by, checked_out_at, checked_out_by,
	cancelled_at, cancelled_by, cancellation_reason,
	booked_by, created_at, updated_at`

func scanReservation(row pgx.Row) (Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID, &r.ConfirmationCode, &r.Type, &r.ResourceID, &r.ResourceName,
		&r.GuestID, &r.GuestName, &r.GuestEmail, &r.GuestPhone,
		&r.CheckIn, &r.CheckOut, &r.GuestCount,
		&r.TotalAmountCents, &r.DepositAmountCents, &r.DepositPaid,
		&r.SpecialRequests, &r.Notes, &r.Status,
		&r.CheckedInAt, &r.CheckedInBy, &r.CheckedOutAt, &r.CheckedOutBy,
		&r.CancelledAt, &r.CancelledBy, &r.CancellationReason,
		&r.BookedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func collectReservations(rows pgx.Rows) ([]Reservation, error) {
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const createReservation = `
INSERT INTO reservations (
	id, confirmation_code, type, resource_id, resource_name,
	guest_id, guest_name, guest_email, guest_phone,
	check_in, check_out, guest_count,
	total_amount_cents, deposit_amount_cents, deposit_paid,
	special_requests, notes, status, booked_by
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
RETURNING ` + reservationColumns

type CreateReservationParams struct {
	ID                 uuid.UUID
	ConfirmationCode   string
	Type               string
	ResourceID         string
	ResourceName       string
	GuestID            string
	GuestName          string
	GuestEmail         string
	GuestPhone         pgtype.Text
	CheckIn            pgtype.Timestamptz
	CheckOut           pgtype.Timestamptz
	GuestCount         int32
	TotalAmountCents   int64
	DepositAmountCents int64
	DepositPaid        bool
	SpecialRequests    pgtype.Text
	Notes              pgtype.Text
	Status             string
	BookedBy           uuid.UUID
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (Reservation, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID, arg.ConfirmationCode, arg.Type, arg.ResourceID, arg.ResourceName,
		arg.GuestID, arg.GuestName, arg.GuestEmail, arg.GuestPhone,
		arg.CheckIn, arg.CheckOut, arg.GuestCount,
		arg.TotalAmountCents, arg.DepositAmountCents, arg.DepositPaid,
		arg.SpecialRequests, arg.Notes, arg.Status, arg.BookedBy,
	)
	return scanReservation(row)
}

const getReservationByID = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

const getReservationByCode = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE confirmation_code = $1`

func (q *Queries) GetReservationByCode(ctx context.Context, db DBTX, code string) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByCode, code))
}

const listReservations = `
SELECT ` + reservationColumns + `
FROM reservations
ORDER BY check_in`

func (q *Queries) ListReservations(ctx context.Context, db DBTX) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservations)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listReservationsByGuest = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE guest_id = $1
ORDER BY check_in`

func (q *Queries) ListReservationsByGuest(ctx context.Context, db DBTX, guestID string) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsByGuest, guestID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listReservationsByResource = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE resource_id = $1
ORDER BY check_in`

func (q *Queries) ListReservationsByResource(ctx context.Context, db DBTX, resourceID string) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsByResource, resourceID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listReservationsByStatus = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = $1
ORDER BY check_in`

func (q *Queries) ListReservationsByStatus(ctx context.Context, db DBTX, status string) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsByStatus, status)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listReservationsByType = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE type = $1
ORDER BY check_in`

func (q *Queries) ListReservationsByType(ctx context.Context, db DBTX, reservationType string) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsByType, reservationType)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listReservationsByDateRange = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE check_in < $2 AND check_out > $1
ORDER BY check_in`

type ListReservationsByDateRangeParams struct {
	RangeStart pgtype.Timestamptz
	RangeEnd   pgtype.Timestamptz
}

func (q *Queries) ListReservationsByDateRange(ctx context.Context, db DBTX, arg ListReservationsByDateRangeParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsByDateRange, arg.RangeStart, arg.RangeEnd)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// Half-open overlap: rows touching only at a boundary are not conflicts.
const findConflictingReservations = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE resource_id = $1
  AND status <> 'cancelled'
  AND check_in < $3
  AND check_out > $2
  AND ($4::uuid IS NULL OR id <> $4)
ORDER BY check_in`

type FindConflictingReservationsParams struct {
	ResourceID string
	CheckIn    pgtype.Timestamptz
	CheckOut   pgtype.Timestamptz
	ExcludeID  pgtype.UUID
}

func (q *Queries) FindConflictingReservations(ctx context.Context, db DBTX, arg FindConflictingReservationsParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, findConflictingReservations, arg.ResourceID, arg.CheckIn, arg.CheckOut, arg.ExcludeID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// Serializes conflict-check-then-write sequences per resource within the
// surrounding transaction.
const acquireResourceLock = `
SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

func (q *Queries) AcquireResourceLock(ctx context.Context, db DBTX, resourceID string) error {
	_, err := db.Exec(ctx, acquireResourceLock, resourceID)
	return err
}

const updateReservationFields = `
UPDATE reservations SET
	guest_name = COALESCE($2, guest_name),
	guest_email = COALESCE($3, guest_email),
	guest_phone = COALESCE($4, guest_phone),
	check_in = COALESCE($5, check_in),
	check_out = COALESCE($6, check_out),
	guest_count = COALESCE($7, guest_count),
	total_amount_cents = COALESCE($8, total_amount_cents),
	deposit_amount_cents = COALESCE($9, deposit_amount_cents),
	special_requests = COALESCE($10, special_requests),
	notes = COALESCE($11, notes),
	updated_at = now()
WHERE id = $1
RETURNING ` + reservationColumns

type UpdateReservationFieldsParams struct {
	ID                 uuid.UUID
	GuestName          pgtype.Text
	GuestEmail         pgtype.Text
	GuestPhone         pgtype.Text
	CheckIn            pgtype.Timestamptz
	CheckOut           pgtype.Timestamptz
	GuestCount         pgtype.Int4
	TotalAmountCents   pgtype.Int8
	DepositAmountCents pgtype.Int8
	SpecialRequests    pgtype.Text
	Notes              pgtype.Text
}

func (q *Queries) UpdateReservationFields(ctx context.Context, db DBTX, arg UpdateReservationFieldsParams) (Reservation, error) {
	row := db.QueryRow(ctx, updateReservationFields,
		arg.ID, arg.GuestName, arg.GuestEmail, arg.GuestPhone,
		arg.CheckIn, arg.CheckOut, arg.GuestCount,
		arg.TotalAmountCents, arg.DepositAmountCents,
		arg.SpecialRequests, arg.Notes,
	)
	return scanReservation(row)
}

const saveReservationState = `
UPDATE reservations SET
	status = $2,
	deposit_paid = $3,
	checked_in_at = $4,
	checked_in_by = $5,
	checked_out_at = $6,
	checked_out_by = $7,
	cancelled_at = $8,
	cancelled_by = $9,
	cancellation_reason = $10,
	updated_at = now()
WHERE id = $1
RETURNING ` + reservationColumns

type SaveReservationStateParams struct {
	ID                 uuid.UUID
	Status             string
	DepositPaid        bool
	CheckedInAt        pgtype.Timestamptz
	CheckedInBy        pgtype.UUID
	CheckedOutAt       pgtype.Timestamptz
	CheckedOutBy       pgtype.UUID
	CancelledAt        pgtype.Timestamptz
	CancelledBy        pgtype.UUID
	CancellationReason pgtype.Text
}

func (q *Queries) SaveReservationState(ctx context.Context, db DBTX, arg SaveReservationStateParams) (Reservation, error) {
	row := db.QueryRow(ctx, saveReservationState,
		arg.ID, arg.Status, arg.DepositPaid,
		arg.CheckedInAt, arg.CheckedInBy,
		arg.CheckedOutAt, arg.CheckedOutBy,
		arg.CancelledAt, arg.CancelledBy, arg.CancellationReason,
	)
	return scanReservation(row)
}

const deleteReservation = `
DELETE FROM reservations
WHERE id = $1`

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listUpcomingReservationsByGuest = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE guest_id = $1
  AND check_in >= $2
  AND status NOT IN ('cancelled', 'checked_out', 'no_show')
ORDER BY check_in`

type ListUpcomingReservationsByGuestParams struct {
	GuestID string
	Now     pgtype.Timestamptz
}

func (q *Queries) ListUpcomingReservationsByGuest(ctx context.Context, db DBTX, arg ListUpcomingReservationsByGuestParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listUpcomingReservationsByGuest, arg.GuestID, arg.Now)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listTodayCheckIns = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = 'confirmed'
  AND check_in >= $1
  AND check_in < $2
ORDER BY check_in`

type ListTodayCheckInsParams struct {
	DayStart pgtype.Timestamptz
	DayEnd   pgtype.Timestamptz
}

func (q *Queries) ListTodayCheckIns(ctx context.Context, db DBTX, arg ListTodayCheckInsParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listTodayCheckIns, arg.DayStart, arg.DayEnd)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listTodayCheckOuts = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = 'checked_in'
  AND check_out >= $1
  AND check_out < $2
ORDER BY check_out`

type ListTodayCheckOutsParams struct {
	DayStart pgtype.Timestamptz
	DayEnd   pgtype.Timestamptz
}

func (q *Queries) ListTodayCheckOuts(ctx context.Context, db DBTX, arg ListTodayCheckOutsParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listTodayCheckOuts, arg.DayStart, arg.DayEnd)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

const listPendingReservations = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = 'pending'
ORDER BY check_in`

func (q *Queries) ListPendingReservations(ctx context.Context, db DBTX) ([]Reservation, error) {
	rows, err := db.Query(ctx, listPendingReservations)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}
