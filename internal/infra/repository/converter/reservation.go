package converter

import (
	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/infra/sqlc"
	"resort-reservations/internal/pkg/pgconv"
)

func ReservationToCreateParams(res *reservation.Reservation) sqlc.CreateReservationParams {
	return sqlc.CreateReservationParams{
		ID:                 res.ID(),
		ConfirmationCode:   res.Code().String(),
		Type:               res.Kind().String(),
		ResourceID:         res.ResourceID(),
		ResourceName:       res.ResourceName(),
		GuestID:            res.Guest().ID,
		GuestName:          res.Guest().Name,
		GuestEmail:         res.Guest().Email,
		GuestPhone:         pgconv.StringPtrToPgtype(res.Guest().Phone),
		CheckIn:            pgconv.TimeToPgtype(res.Period().CheckIn()),
		CheckOut:           pgconv.TimeToPgtype(res.Period().CheckOut()),
		GuestCount:         int32(res.GuestCount()),
		TotalAmountCents:   res.TotalCents(),
		DepositAmountCents: res.DepositCents(),
		DepositPaid:        res.DepositPaid(),
		SpecialRequests:    pgconv.StringPtrToPgtype(res.SpecialRequests()),
		Notes:              pgconv.StringPtrToPgtype(res.Notes()),
		Status:             res.Status().String(),
		BookedBy:           res.BookedBy(),
	}
}

func ReservationToStateParams(res *reservation.Reservation) sqlc.SaveReservationStateParams {
	return sqlc.SaveReservationStateParams{
		ID:                 res.ID(),
		Status:             res.Status().String(),
		DepositPaid:        res.DepositPaid(),
		CheckedInAt:        pgconv.TimePtrToPgtype(res.CheckedInAt()),
		CheckedInBy:        pgconv.UUIDPtrToPgtype(res.CheckedInBy()),
		CheckedOutAt:       pgconv.TimePtrToPgtype(res.CheckedOutAt()),
		CheckedOutBy:       pgconv.UUIDPtrToPgtype(res.CheckedOutBy()),
		CancelledAt:        pgconv.TimePtrToPgtype(res.CancelledAt()),
		CancelledBy:        pgconv.UUIDPtrToPgtype(res.CancelledBy()),
		CancellationReason: pgconv.StringPtrToPgtype(res.CancellationReason()),
	}
}

// ReservationFromRow rebuilds the aggregate from a persisted row. The schema's
// CHECK constraints guarantee the stay period is well formed.
func ReservationFromRow(row sqlc.Reservation) (*reservation.Reservation, error) {
	period, err := reservation.NewStayPeriod(pgconv.TimeFromPgtype(row.CheckIn), pgconv.TimeFromPgtype(row.CheckOut))
	if err != nil {
		return nil, err
	}

	guest := reservation.Guest{
		ID:    row.GuestID,
		Name:  row.GuestName,
		Email: row.GuestEmail,
		Phone: pgconv.StringPtrFromPgtype(row.GuestPhone),
	}

	return reservation.ReconstructReservation(
		row.ID,
		reservation.ConfirmationCode(row.ConfirmationCode),
		reservation.Type(row.Type),
		row.ResourceID,
		row.ResourceName,
		guest,
		period,
		int(row.GuestCount),
		row.TotalAmountCents,
		row.DepositAmountCents,
		row.DepositPaid,
		pgconv.StringPtrFromPgtype(row.SpecialRequests),
		pgconv.StringPtrFromPgtype(row.Notes),
		reservation.Status(row.Status),
		pgconv.TimePtrFromPgtype(row.CheckedInAt),
		pgconv.UUIDPtrFromPgtype(row.CheckedInBy),
		pgconv.TimePtrFromPgtype(row.CheckedOutAt),
		pgconv.UUIDPtrFromPgtype(row.CheckedOutBy),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
		pgconv.UUIDPtrFromPgtype(row.CancelledBy),
		pgconv.StringPtrFromPgtype(row.CancellationReason),
		row.BookedBy,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
