package commands

import (
	"context"
	"errors"
	"log/slog"

	"resort-reservations/internal/domain/reservation"
	reqdto "resort-reservations/internal/handler/dto/request"
	"resort-reservations/internal/infra"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/internal/pkg/errs"
	"resort-reservations/internal/pkg/patch"
	"resort-reservations/internal/usecase/queries"
	"resort-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange             = errs.New("invalid date range")
	ErrInvalidGuestCount            = errs.New("invalid guest count")
	ErrInvalidReservationType       = errs.New("invalid reservation type")
	ErrInvalidAmount                = errs.New("invalid amount")
	ErrResourceUnavailable          = errs.New("resource unavailable for the requested period")
	ErrReservationNotFound          = errs.New("reservation not found")
	ErrInvalidStatusForModification = errs.New("reservation status does not allow modification")
	ErrInvalidTransition            = errs.New("invalid status transition")
	ErrDepositAlreadyPaid           = errs.New("deposit already paid")
	ErrNoDepositRequired            = errs.New("no deposit required")
	ErrNothingToRefund              = errs.New("no deposit to refund")
	ErrDatabaseOperationFailed      = errs.New("database operation failed")
)

// The confirmation_code column carries a unique constraint, so a generator
// collision surfaces as a duplicate-key error and gets a fresh code.
const maxCodeAttempts = 3

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, staffID uuid.UUID) (*queries.ReservationView, error)
	UpdateReservation(ctx context.Context, id uuid.UUID, req reqdto.UpdateReservationRequest) (*queries.ReservationView, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
	Confirm(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	CheckIn(ctx context.Context, id uuid.UUID, staffID uuid.UUID) (*queries.ReservationView, error)
	CheckOut(ctx context.Context, id uuid.UUID, staffID uuid.UUID) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, staffID uuid.UUID) (*queries.ReservationView, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	RecordDeposit(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	RefundDeposit(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	factory            *reservation.Factory
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		factory:            factory,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

func (r *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	staffID uuid.UUID,
) (*queries.ReservationView, error) {
	period, err := reservation.NewStayPeriod(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	guest := reservation.Guest{
		ID:    req.GuestID,
		Name:  req.GuestName,
		Email: req.GuestEmail,
		Phone: req.GuestPhone,
	}

	input := reservation.NewReservationInput{
		Kind:            reservation.Type(req.Type),
		ResourceID:      req.ResourceID,
		ResourceName:    req.ResourceName,
		Guest:           guest,
		Period:          period,
		GuestCount:      req.GuestCount,
		TotalCents:      req.TotalAmountCents,
		DepositCents:    req.DepositAmountCents,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
		BookedBy:        staffID,
	}

	res, err := r.factory.CreateReservation(input)
	if err != nil {
		return nil, markFactoryError(err)
	}

	var created *reservation.Reservation
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().LockResource(ctx, res.ResourceID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		conflicts, err := tx.Reservations().FindConflicts(ctx, res.ResourceID(), res.Period(), nil)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(conflicts) > 0 {
			return errs.Mark(errs.New("overlapping reservation exists"), ErrResourceUnavailable)
		}

		created, err = r.insertWithCodeRetry(ctx, tx, res)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reservation created",
		"reservation_id", created.ID(),
		"confirmation_code", created.Code(),
		"type", created.Kind(),
		"resource_id", created.ResourceID())

	return r.reservationQueries.GetByID(ctx, created.ID())
}

// insertWithCodeRetry re-rolls the confirmation code when the insert hits the
// unique constraint. An exclusion-constraint violation means another writer
// won the slot despite the advisory lock and maps to unavailability.
func (r *reservationUseCaseImpl) insertWithCodeRetry(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (*reservation.Reservation, error) {
	for attempt := 0; ; attempt++ {
		created, err := tx.Reservations().Create(ctx, res)
		if err == nil {
			return created, nil
		}
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrResourceUnavailable)
		}
		if infra.IsKind(err, infra.KindDuplicateKey) && attempt < maxCodeAttempts-1 {
			res.ReplaceConfirmationCode(r.factory.GenerateCode())
			continue
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

func (r *reservationUseCaseImpl) UpdateReservation(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.UpdateReservationRequest,
) (*queries.ReservationView, error) {
	changes := req.ToChanges()

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return markRepoNotFound(err)
		}
		if !res.CanModify() {
			return ErrInvalidStatusForModification
		}

		// Field validation comes after the existence and status checks so a
		// missing or finalized reservation wins over a bad payload.
		if changes.GuestCount != nil && *changes.GuestCount < 1 {
			return ErrInvalidGuestCount
		}
		if changes.TotalAmountCents != nil && *changes.TotalAmountCents < 0 {
			return ErrInvalidAmount
		}
		if changes.DepositAmountCents != nil && *changes.DepositAmountCents < 0 {
			return ErrInvalidAmount
		}

		if changes.HasDates() {
			checkIn := patch.Coalesce(changes.CheckIn, res.Period().CheckIn())
			checkOut := patch.Coalesce(changes.CheckOut, res.Period().CheckOut())
			period, err := reservation.NewStayPeriod(checkIn, checkOut)
			if err != nil {
				return errs.Mark(err, ErrInvalidDateRange)
			}

			if err := tx.Reservations().LockResource(ctx, res.ResourceID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			conflicts, err := tx.Reservations().FindConflicts(ctx, res.ResourceID(), period, &id)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if len(conflicts) > 0 {
				return errs.Mark(errs.New("overlapping reservation exists"), ErrResourceUnavailable)
			}
		}

		if _, err := tx.Reservations().UpdateFields(ctx, id, changes); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrResourceUnavailable)
			}
			return markRepoNotFound(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("reservation updated", "reservation_id", id)

	return r.reservationQueries.GetByID(ctx, id)
}

func (r *reservationUseCaseImpl) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return markRepoNotFound(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Warn("reservation deleted", "reservation_id", id)
	return nil
}

func (r *reservationUseCaseImpl) Confirm(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "reservation confirmed", func(res *reservation.Reservation) error {
		return res.Confirm()
	})
}

func (r *reservationUseCaseImpl) CheckIn(ctx context.Context, id uuid.UUID, staffID uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "guest checked in", func(res *reservation.Reservation) error {
		return res.CheckIn(staffID, r.clock.Now())
	})
}

func (r *reservationUseCaseImpl) CheckOut(ctx context.Context, id uuid.UUID, staffID uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "guest checked out", func(res *reservation.Reservation) error {
		return res.CheckOut(staffID, r.clock.Now())
	})
}

func (r *reservationUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID, reason string, staffID uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "reservation cancelled", func(res *reservation.Reservation) error {
		return res.Cancel(reason, staffID, r.clock.Now())
	})
}

func (r *reservationUseCaseImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "reservation marked no-show", func(res *reservation.Reservation) error {
		return res.MarkNoShow()
	})
}

func (r *reservationUseCaseImpl) RecordDeposit(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "deposit recorded", func(res *reservation.Reservation) error {
		return res.RecordDeposit()
	})
}

func (r *reservationUseCaseImpl) RefundDeposit(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.transition(ctx, id, "deposit refunded", func(res *reservation.Reservation) error {
		return res.RefundDeposit()
	})
}

// transition loads the aggregate, applies one domain state change and persists
// the result, all inside a single transaction.
func (r *reservationUseCaseImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	event string,
	apply func(res *reservation.Reservation) error,
) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return markRepoNotFound(err)
		}
		if err := apply(res); err != nil {
			return markDomainError(err)
		}
		if _, err := tx.Reservations().SaveState(ctx, res); err != nil {
			return markRepoNotFound(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info(event, "reservation_id", id)

	return r.reservationQueries.GetByID(ctx, id)
}

func markRepoNotFound(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrReservationNotFound)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func markFactoryError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrInvalidType):
		return errs.Mark(err, ErrInvalidReservationType)
	case errors.Is(err, reservation.ErrInvalidGuestCount):
		return errs.Mark(err, ErrInvalidGuestCount)
	case errors.Is(err, reservation.ErrNegativeAmount):
		return errs.Mark(err, ErrInvalidAmount)
	default:
		return errs.Mark(err, ErrInvalidDateRange)
	}
}

func markDomainError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrInvalidTransition):
		return errs.Mark(err, ErrInvalidTransition)
	case errors.Is(err, reservation.ErrDepositAlreadyPaid):
		return errs.Mark(err, ErrDepositAlreadyPaid)
	case errors.Is(err, reservation.ErrNoDepositRequired):
		return errs.Mark(err, ErrNoDepositRequired)
	case errors.Is(err, reservation.ErrNothingToRefund):
		return errs.Mark(err, ErrNothingToRefund)
	default:
		return err
	}
}
