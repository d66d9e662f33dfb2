package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservation struct {
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
	CheckedInAt        pgtype.Timestamptz
	CheckedInBy        pgtype.UUID
	CheckedOutAt       pgtype.Timestamptz
	CheckedOutBy       pgtype.UUID
	CancelledAt        pgtype.Timestamptz
	CancelledBy        pgtype.UUID
	CancellationReason pgtype.Text
	BookedBy           uuid.UUID
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
}
