package reservation

import (
	"fmt"

	"resort-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

// NewReservationInput carries the raw creation intent. Interval and guest
// count validation happens here; availability is checked by the caller inside
// the same transaction as the write.
type NewReservationInput struct {
	Kind            Type
	ResourceID      string
	ResourceName    string
	Guest           Guest
	Period          StayPeriod
	GuestCount      int
	TotalCents      int64
	DepositCents    *int64
	SpecialRequests *string
	Notes           *string
	BookedBy        uuid.UUID
}

type Factory struct {
	clock clock.Clock
	codes *CodeGenerator
}

func NewFactory(clock clock.Clock, codes *CodeGenerator) *Factory {
	return &Factory{
		clock: clock,
		codes: codes,
	}
}

func (f *Factory) CreateReservation(input NewReservationInput) (*Reservation, error) {
	if !input.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, input.Kind)
	}
	if input.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}
	if input.TotalCents < 0 {
		return nil, ErrNegativeAmount
	}

	depositCents := int64(0)
	if input.DepositCents != nil {
		if *input.DepositCents < 0 {
			return nil, ErrNegativeAmount
		}
		depositCents = *input.DepositCents
	}

	now := f.clock.Now()

	return &Reservation{
		id:              uuid.New(),
		code:            f.codes.Generate(),
		kind:            input.Kind,
		resourceID:      input.ResourceID,
		resourceName:    input.ResourceName,
		guest:           input.Guest,
		period:          input.Period,
		guestCount:      input.GuestCount,
		totalCents:      input.TotalCents,
		depositCents:    depositCents,
		depositPaid:     false,
		specialRequests: input.SpecialRequests,
		notes:           input.Notes,
		status:          StatusPending,
		bookedBy:        input.BookedBy,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// GenerateCode exposes the factory's code source for collision retries.
func (f *Factory) GenerateCode() ConfirmationCode {
	return f.codes.Generate()
}
