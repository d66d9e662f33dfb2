//go:build unit

package reservation_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.Code().IsValid())
		assert.Equal(t, reservation.StatusPending, actual.Status())
		assert.Equal(t, reservation.TypeRoom, actual.Kind())
		assert.False(t, actual.DepositPaid())
		assert.False(t, actual.CreatedAt().IsZero())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.Type = "igloo" }).
			BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrInvalidType)
	})

	t.Run("guest count below one", func(t *testing.T) {
		_, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.GuestCount = 0 }).
			BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrInvalidGuestCount)
	})

	t.Run("negative total", func(t *testing.T) {
		_, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.TotalAmountCents = -1 }).
			BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrNegativeAmount)
	})

	t.Run("negative deposit", func(t *testing.T) {
		_, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.DepositAmountCents = -1 }).
			BuildDomain()
		assert.ErrorIs(t, err, reservation.ErrNegativeAmount)
	})

	t.Run("deposit defaults to zero when omitted", func(t *testing.T) {
		factory := reservation.NewFactory(
			clock.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
			reservation.NewCodeGenerator(rand.New(rand.NewPCG(1, 2))),
		)
		period, err := reservation.NewStayPeriod(
			time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
			time.Date(2026, 2, 5, 11, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		res, err := factory.CreateReservation(reservation.NewReservationInput{
			Kind:         reservation.TypeRoom,
			ResourceID:   "room-101",
			ResourceName: "Ocean View King",
			Guest:        reservation.Guest{ID: "guest-42", Name: "Dana Whitfield", Email: "dana@example.com"},
			Period:       period,
			GuestCount:   2,
			TotalCents:   89900,
			BookedBy:     uuid.New(),
		})
		require.NoError(t, err)

		assert.Zero(t, res.DepositCents())
		assert.False(t, res.DepositPaid())
		assert.ErrorIs(t, res.RecordDeposit(), reservation.ErrNoDepositRequired)
	})
}

func TestReservationLifecycle(t *testing.T) {
	staffID := uuid.New()
	// Day of check-in, well past the booked check-in instant.
	onCheckInDay := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	newConfirmed := func(t *testing.T) *reservation.Reservation {
		t.Helper()
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, res.Confirm())
		return res
	}

	t.Run("full happy path", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Confirm())
		assert.Equal(t, reservation.StatusConfirmed, res.Status())

		require.NoError(t, res.CheckIn(staffID, onCheckInDay))
		assert.Equal(t, reservation.StatusCheckedIn, res.Status())
		require.NotNil(t, res.CheckedInAt())
		assert.Equal(t, staffID, *res.CheckedInBy())

		require.NoError(t, res.CheckOut(staffID, onCheckInDay.Add(4*24*time.Hour)))
		assert.Equal(t, reservation.StatusCheckedOut, res.Status())
		require.NotNil(t, res.CheckedOutAt())
	})

	t.Run("confirm is only valid from pending", func(t *testing.T) {
		res := newConfirmed(t)
		assert.ErrorIs(t, res.Confirm(), reservation.ErrInvalidTransition)
	})

	t.Run("check-in requires confirmed status", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, res.CheckIn(staffID, onCheckInDay), reservation.ErrInvalidTransition)
	})

	t.Run("check-in before the check-in date is rejected", func(t *testing.T) {
		res := newConfirmed(t)
		dayBefore := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
		assert.ErrorIs(t, res.CheckIn(staffID, dayBefore), reservation.ErrInvalidTransition)
	})

	t.Run("check-in on the date ignores time of day", func(t *testing.T) {
		res := newConfirmed(t)
		// Booked check-in is 14:00; arriving at 09:00 the same day is fine.
		earlyMorning := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
		assert.NoError(t, res.CheckIn(staffID, earlyMorning))
	})

	t.Run("check-out requires checked-in status", func(t *testing.T) {
		res := newConfirmed(t)
		assert.ErrorIs(t, res.CheckOut(staffID, onCheckInDay), reservation.ErrInvalidTransition)
	})

	t.Run("cancel from pending and confirmed", func(t *testing.T) {
		pending, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, pending.Cancel("guest request", staffID, onCheckInDay))
		assert.Equal(t, reservation.StatusCancelled, pending.Status())
		require.NotNil(t, pending.CancellationReason())
		assert.Equal(t, "guest request", *pending.CancellationReason())

		confirmed := newConfirmed(t)
		require.NoError(t, confirmed.Cancel("plans changed", staffID, onCheckInDay))
	})

	t.Run("cancel after check-in is rejected", func(t *testing.T) {
		res := newConfirmed(t)
		require.NoError(t, res.CheckIn(staffID, onCheckInDay))
		assert.ErrorIs(t, res.Cancel("too late", staffID, onCheckInDay), reservation.ErrInvalidTransition)
	})

	t.Run("no-show only from confirmed", func(t *testing.T) {
		res := newConfirmed(t)
		require.NoError(t, res.MarkNoShow())
		assert.Equal(t, reservation.StatusNoShow, res.Status())

		pending, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, pending.MarkNoShow(), reservation.ErrInvalidTransition)
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		res := newConfirmed(t)
		require.NoError(t, res.Cancel("done", staffID, onCheckInDay))

		assert.ErrorIs(t, res.Confirm(), reservation.ErrInvalidTransition)
		assert.ErrorIs(t, res.CheckIn(staffID, onCheckInDay), reservation.ErrInvalidTransition)
		assert.ErrorIs(t, res.CheckOut(staffID, onCheckInDay), reservation.ErrInvalidTransition)
		assert.ErrorIs(t, res.Cancel("again", staffID, onCheckInDay), reservation.ErrInvalidTransition)
		assert.ErrorIs(t, res.MarkNoShow(), reservation.ErrInvalidTransition)
	})
}

func reconstructWithStatus(t *testing.T, status reservation.Status) *reservation.Reservation {
	t.Helper()
	period, err := reservation.NewStayPeriod(
		time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 5, 11, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return reservation.ReconstructReservation(
		uuid.New(), "BRXK7M2P", reservation.TypeRoom, "room-101", "Ocean View King",
		reservation.Guest{ID: "guest-42", Name: "Dana Whitfield", Email: "dana@example.com"},
		period, 2, 89900, 20000, false, nil, nil, status,
		nil, nil, nil, nil, nil, nil, nil,
		uuid.New(), now, now,
	)
}

// Every transition method must agree with the transitions table, from every
// starting status.
func TestTransitionGuardsFollowTable(t *testing.T) {
	staffID := uuid.New()
	// Day of the booked check-in so the date guard does not interfere.
	now := time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC)

	statuses := []reservation.Status{
		reservation.StatusPending, reservation.StatusConfirmed, reservation.StatusCheckedIn,
		reservation.StatusCheckedOut, reservation.StatusCancelled, reservation.StatusNoShow,
	}
	attempts := []struct {
		name   string
		target reservation.Status
		apply  func(*reservation.Reservation) error
	}{
		{"confirm", reservation.StatusConfirmed, func(r *reservation.Reservation) error { return r.Confirm() }},
		{"check-in", reservation.StatusCheckedIn, func(r *reservation.Reservation) error { return r.CheckIn(staffID, now) }},
		{"check-out", reservation.StatusCheckedOut, func(r *reservation.Reservation) error { return r.CheckOut(staffID, now) }},
		{"cancel", reservation.StatusCancelled, func(r *reservation.Reservation) error { return r.Cancel("table check", staffID, now) }},
		{"no-show", reservation.StatusNoShow, func(r *reservation.Reservation) error { return r.MarkNoShow() }},
	}

	for _, status := range statuses {
		for _, a := range attempts {
			t.Run(status.String()+" "+a.name, func(t *testing.T) {
				res := reconstructWithStatus(t, status)
				err := a.apply(res)
				if status.CanTransitionTo(a.target) {
					assert.NoError(t, err)
					assert.Equal(t, a.target, res.Status())
				} else {
					assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
					assert.Equal(t, status, res.Status())
				}
			})
		}
	}
}

func TestReservationDeposits(t *testing.T) {
	t.Run("record and refund", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.RecordDeposit())
		assert.True(t, res.DepositPaid())

		assert.ErrorIs(t, res.RecordDeposit(), reservation.ErrDepositAlreadyPaid)

		require.NoError(t, res.RefundDeposit())
		assert.False(t, res.DepositPaid())

		assert.ErrorIs(t, res.RefundDeposit(), reservation.ErrNothingToRefund)
	})

	t.Run("no deposit required", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) { b.DepositAmountCents = 0 }).
			BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, res.RecordDeposit(), reservation.ErrNoDepositRequired)
	})
}

func TestReservationReschedule(t *testing.T) {
	staffID := uuid.New()

	t.Run("allowed while pending", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		period, err := reservation.NewStayPeriod(
			time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		require.NoError(t, res.Reschedule(period))
		assert.Equal(t, period.CheckIn(), res.Period().CheckIn())
	})

	t.Run("rejected once checked in", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, res.Confirm())
		require.NoError(t, res.CheckIn(staffID, time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC)))

		period, err := reservation.NewStayPeriod(
			time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		assert.ErrorIs(t, res.Reschedule(period), reservation.ErrNotModifiable)
	})
}

func TestStatusPredicates(t *testing.T) {
	checkIn := time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)

	assert.True(t, reservation.CanCancel(reservation.StatusPending))
	assert.True(t, reservation.CanCancel(reservation.StatusConfirmed))
	assert.False(t, reservation.CanCancel(reservation.StatusCheckedIn))

	assert.True(t, reservation.CanModify(reservation.StatusPending))
	assert.False(t, reservation.CanModify(reservation.StatusCheckedOut))

	assert.True(t, reservation.CanCheckIn(reservation.StatusConfirmed, checkIn, checkIn.Add(-5*time.Hour)))
	assert.False(t, reservation.CanCheckIn(reservation.StatusConfirmed, checkIn, checkIn.AddDate(0, 0, -1)))
	assert.False(t, reservation.CanCheckIn(reservation.StatusPending, checkIn, checkIn))

	assert.True(t, reservation.CanCheckOut(reservation.StatusCheckedIn))
	assert.False(t, reservation.CanCheckOut(reservation.StatusConfirmed))
}
