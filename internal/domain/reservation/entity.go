package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidType        = errors.New("invalid reservation type")
	ErrNotModifiable      = errors.New("reservation can no longer be modified")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDepositAlreadyPaid = errors.New("deposit already recorded")
	ErrNoDepositRequired  = errors.New("reservation requires no deposit")
	ErrNothingToRefund    = errors.New("deposit has not been paid")
)

// Guest carries the denormalized guest identity supplied by the caller.
// Guests are owned by an external collaborator; only opaque ids and contact
// details live here.
type Guest struct {
	ID    string
	Name  string
	Email string
	Phone *string
}

type Reservation struct {
	id              uuid.UUID
	code            ConfirmationCode
	kind            Type
	resourceID      string
	resourceName    string
	guest           Guest
	period          StayPeriod
	guestCount      int
	totalCents      int64
	depositCents    int64
	depositPaid     bool
	specialRequests *string
	notes           *string
	status          Status

	checkedInAt        *time.Time
	checkedInBy        *uuid.UUID
	checkedOutAt       *time.Time
	checkedOutBy       *uuid.UUID
	cancelledAt        *time.Time
	cancelledBy        *uuid.UUID
	cancellationReason *string

	bookedBy  uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructReservation(
	id uuid.UUID,
	code ConfirmationCode,
	kind Type,
	resourceID, resourceName string,
	guest Guest,
	period StayPeriod,
	guestCount int,
	totalCents, depositCents int64,
	depositPaid bool,
	specialRequests, notes *string,
	status Status,
	checkedInAt *time.Time, checkedInBy *uuid.UUID,
	checkedOutAt *time.Time, checkedOutBy *uuid.UUID,
	cancelledAt *time.Time, cancelledBy *uuid.UUID, cancellationReason *string,
	bookedBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		code:               code,
		kind:               kind,
		resourceID:         resourceID,
		resourceName:       resourceName,
		guest:              guest,
		period:             period,
		guestCount:         guestCount,
		totalCents:         totalCents,
		depositCents:       depositCents,
		depositPaid:        depositPaid,
		specialRequests:    specialRequests,
		notes:              notes,
		status:             status,
		checkedInAt:        checkedInAt,
		checkedInBy:        checkedInBy,
		checkedOutAt:       checkedOutAt,
		checkedOutBy:       checkedOutBy,
		cancelledAt:        cancelledAt,
		cancelledBy:        cancelledBy,
		cancellationReason: cancellationReason,
		bookedBy:           bookedBy,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Status predicates. Pure functions of status (and clock for check-in) so the
// handler layer can expose them for UI gating without duplicating the rules.
// ---------------------------------------------------------------------------

func CanCancel(s Status) bool {
	return s.CanTransitionTo(StatusCancelled)
}

func CanModify(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanCheckIn requires a status the transition table allows and that the
// check-in date has arrived. The comparison is date-only in now's location;
// time of day is ignored.
func CanCheckIn(s Status, checkIn, now time.Time) bool {
	return s.CanTransitionTo(StatusCheckedIn) && !dateOf(checkIn, now.Location()).After(dateOf(now, now.Location()))
}

func CanCheckOut(s Status) bool {
	return s.CanTransitionTo(StatusCheckedOut)
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func (r *Reservation) CanCancel() bool   { return CanCancel(r.status) }
func (r *Reservation) CanModify() bool   { return CanModify(r.status) }
func (r *Reservation) CanCheckOut() bool { return CanCheckOut(r.status) }

func (r *Reservation) CanCheckIn(now time.Time) bool {
	return CanCheckIn(r.status, r.period.CheckIn(), now)
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

func (r *Reservation) Confirm() error {
	if !r.status.CanTransitionTo(StatusConfirmed) {
		return fmt.Errorf("%w: only pending reservations can be confirmed, current status is %s", ErrInvalidTransition, r.status)
	}
	r.status = StatusConfirmed
	return nil
}

func (r *Reservation) CheckIn(staffID uuid.UUID, now time.Time) error {
	if !r.status.CanTransitionTo(StatusCheckedIn) {
		return fmt.Errorf("%w: reservation must be confirmed before check-in, current status is %s", ErrInvalidTransition, r.status)
	}
	if !r.CanCheckIn(now) {
		return fmt.Errorf("%w: check-in date has not arrived yet", ErrInvalidTransition)
	}
	r.status = StatusCheckedIn
	r.checkedInAt = &now
	r.checkedInBy = &staffID
	return nil
}

func (r *Reservation) CheckOut(staffID uuid.UUID, now time.Time) error {
	if !r.status.CanTransitionTo(StatusCheckedOut) {
		return fmt.Errorf("%w: reservation must be checked in before check-out, current status is %s", ErrInvalidTransition, r.status)
	}
	r.status = StatusCheckedOut
	r.checkedOutAt = &now
	r.checkedOutBy = &staffID
	return nil
}

func (r *Reservation) Cancel(reason string, cancelledBy uuid.UUID, now time.Time) error {
	if !r.status.CanTransitionTo(StatusCancelled) {
		return fmt.Errorf("%w: only pending or confirmed reservations can be cancelled, current status is %s", ErrInvalidTransition, r.status)
	}
	r.status = StatusCancelled
	r.cancelledAt = &now
	r.cancelledBy = &cancelledBy
	r.cancellationReason = &reason
	return nil
}

func (r *Reservation) MarkNoShow() error {
	if !r.status.CanTransitionTo(StatusNoShow) {
		return fmt.Errorf("%w: only confirmed reservations can be marked as no-show, current status is %s", ErrInvalidTransition, r.status)
	}
	r.status = StatusNoShow
	return nil
}

// ---------------------------------------------------------------------------
// Deposits. Independent of the status state machine: a cancelled reservation
// may still have its deposit refunded.
// ---------------------------------------------------------------------------

func (r *Reservation) RecordDeposit() error {
	if r.depositPaid {
		return ErrDepositAlreadyPaid
	}
	if r.depositCents <= 0 {
		return ErrNoDepositRequired
	}
	r.depositPaid = true
	return nil
}

func (r *Reservation) RefundDeposit() error {
	if !r.depositPaid {
		return ErrNothingToRefund
	}
	r.depositPaid = false
	return nil
}

// ---------------------------------------------------------------------------
// Field updates
// ---------------------------------------------------------------------------

// Reschedule replaces the stay period. Callers must re-run the availability
// check (excluding this reservation) before persisting.
func (r *Reservation) Reschedule(period StayPeriod) error {
	if !r.CanModify() {
		return ErrNotModifiable
	}
	r.period = period
	return nil
}

// ReplaceConfirmationCode swaps in a fresh code after a storage-level
// collision on insert.
func (r *Reservation) ReplaceConfirmationCode(code ConfirmationCode) {
	r.code = code
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) Code() ConfirmationCode      { return r.code }
func (r *Reservation) Kind() Type                  { return r.kind }
func (r *Reservation) ResourceID() string          { return r.resourceID }
func (r *Reservation) ResourceName() string        { return r.resourceName }
func (r *Reservation) Guest() Guest                { return r.guest }
func (r *Reservation) Period() StayPeriod          { return r.period }
func (r *Reservation) GuestCount() int             { return r.guestCount }
func (r *Reservation) TotalCents() int64           { return r.totalCents }
func (r *Reservation) DepositCents() int64         { return r.depositCents }
func (r *Reservation) DepositPaid() bool           { return r.depositPaid }
func (r *Reservation) SpecialRequests() *string    { return r.specialRequests }
func (r *Reservation) Notes() *string              { return r.notes }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) CheckedInAt() *time.Time     { return r.checkedInAt }
func (r *Reservation) CheckedInBy() *uuid.UUID     { return r.checkedInBy }
func (r *Reservation) CheckedOutAt() *time.Time    { return r.checkedOutAt }
func (r *Reservation) CheckedOutBy() *uuid.UUID    { return r.checkedOutBy }
func (r *Reservation) CancelledAt() *time.Time     { return r.cancelledAt }
func (r *Reservation) CancelledBy() *uuid.UUID     { return r.cancelledBy }
func (r *Reservation) CancellationReason() *string { return r.cancellationReason }
func (r *Reservation) BookedBy() uuid.UUID         { return r.bookedBy }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
