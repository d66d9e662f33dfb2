package shared

import (
	"context"
	"time"

	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/infra/sqlc"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	DB() sqlc.DBTX
}

// ReservationChanges carries a partial update; nil fields are left untouched.
type ReservationChanges struct {
	GuestName          *string
	GuestEmail         *string
	GuestPhone         *string
	CheckIn            *time.Time
	CheckOut           *time.Time
	GuestCount         *int32
	TotalAmountCents   *int64
	DepositAmountCents *int64
	SpecialRequests    *string
	Notes              *string
}

// HasDates reports whether the update touches the booked interval and thus
// needs a fresh availability check.
func (c ReservationChanges) HasDates() bool {
	return c.CheckIn != nil || c.CheckOut != nil
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// LockResource serializes conflict-check-then-write sequences for one
	// resource; it must be called inside Within before FindConflicts.
	LockResource(ctx context.Context, resourceID string) error
	FindConflicts(ctx context.Context, resourceID string, period reservation.StayPeriod, excludeID *uuid.UUID) ([]*reservation.Reservation, error)
	UpdateFields(ctx context.Context, id uuid.UUID, changes ReservationChanges) (*reservation.Reservation, error)
	SaveState(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
