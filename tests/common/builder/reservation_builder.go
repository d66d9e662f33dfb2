//go:build unit || e2e

package builder

import (
	"math/rand/v2"
	"time"

	domreservation "resort-reservations/internal/domain/reservation"
	reqdto "resort-reservations/internal/handler/dto/request"
	"resort-reservations/internal/infra/sqlc"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinzhu/copier"
)

type ReservationBuilder struct {
	Type               string
	ResourceID         string
	ResourceName       string
	GuestID            string
	GuestName          string
	GuestEmail         string
	GuestPhone         *string
	CheckIn            time.Time
	CheckOut           time.Time
	GuestCount         int
	TotalAmountCents   int64
	DepositAmountCents int64
	DepositPaid        bool
	SpecialRequests    *string
	Notes              *string
	Status             string
	BookedBy           uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		Type:               "room",
		ResourceID:         "room-101",
		ResourceName:       "Ocean View King",
		GuestID:            "guest-42",
		GuestName:          "Dana Whitfield",
		GuestEmail:         "dana@example.com",
		CheckIn:            time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC),
		CheckOut:           time.Date(2026, 2, 5, 11, 0, 0, 0, time.UTC),
		GuestCount:         2,
		TotalAmountCents:   89900,
		DepositAmountCents: 20000,
		Status:             "pending",
		BookedBy:           uuid.New(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Clone returns an independent copy so one scenario can fork variants.
func (r *ReservationBuilder) Clone() *ReservationBuilder {
	var c ReservationBuilder
	if err := copier.Copy(&c, r); err != nil {
		panic(err)
	}
	return &c
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	period, err := domreservation.NewStayPeriod(r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}

	factory := domreservation.NewFactory(
		clock.NewMockClock(r.CreatedAt),
		domreservation.NewCodeGenerator(rand.New(rand.NewPCG(1, 2))),
	)
	deposit := r.DepositAmountCents

	return factory.CreateReservation(domreservation.NewReservationInput{
		Kind:         domreservation.Type(r.Type),
		ResourceID:   r.ResourceID,
		ResourceName: r.ResourceName,
		Guest: domreservation.Guest{
			ID:    r.GuestID,
			Name:  r.GuestName,
			Email: r.GuestEmail,
			Phone: r.GuestPhone,
		},
		Period:          period,
		GuestCount:      r.GuestCount,
		TotalCents:      r.TotalAmountCents,
		DepositCents:    &deposit,
		SpecialRequests: r.SpecialRequests,
		Notes:           r.Notes,
		BookedBy:        r.BookedBy,
	})
}

func (r *ReservationBuilder) BuildInfra() sqlc.Reservation {
	return sqlc.Reservation{
		ID:                 uuid.New(),
		ConfirmationCode:   "BRXK7M2P",
		Type:               r.Type,
		ResourceID:         r.ResourceID,
		ResourceName:       r.ResourceName,
		GuestID:            r.GuestID,
		GuestName:          r.GuestName,
		GuestEmail:         r.GuestEmail,
		GuestPhone:         textOrNull(r.GuestPhone),
		CheckIn:            pgtype.Timestamptz{Time: r.CheckIn, Valid: true},
		CheckOut:           pgtype.Timestamptz{Time: r.CheckOut, Valid: true},
		GuestCount:         int32(r.GuestCount),
		TotalAmountCents:   r.TotalAmountCents,
		DepositAmountCents: r.DepositAmountCents,
		DepositPaid:        r.DepositPaid,
		SpecialRequests:    textOrNull(r.SpecialRequests),
		Notes:              textOrNull(r.Notes),
		Status:             r.Status,
		BookedBy:           r.BookedBy,
		CreatedAt:          pgtype.Timestamptz{Time: r.CreatedAt, Valid: true},
		UpdatedAt:          pgtype.Timestamptz{Time: r.UpdatedAt, Valid: true},
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	deposit := r.DepositAmountCents
	return reqdto.CreateReservationRequest{
		Type:               r.Type,
		ResourceID:         r.ResourceID,
		ResourceName:       r.ResourceName,
		GuestID:            r.GuestID,
		GuestName:          r.GuestName,
		GuestEmail:         r.GuestEmail,
		GuestPhone:         r.GuestPhone,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		GuestCount:         r.GuestCount,
		TotalAmountCents:   r.TotalAmountCents,
		DepositAmountCents: &deposit,
		SpecialRequests:    r.SpecialRequests,
		Notes:              r.Notes,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	guestName := r.GuestName
	checkIn := r.CheckIn
	checkOut := r.CheckOut
	guestCount := int32(r.GuestCount)
	return reqdto.UpdateReservationRequest{
		GuestName:  &guestName,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		GuestCount: &guestCount,
	}
}

func (r *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 uuid.New(),
		ConfirmationCode:   "BRXK7M2P",
		Type:               r.Type,
		ResourceID:         r.ResourceID,
		ResourceName:       r.ResourceName,
		GuestID:            r.GuestID,
		GuestName:          r.GuestName,
		GuestEmail:         r.GuestEmail,
		GuestPhone:         r.GuestPhone,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		GuestCount:         int32(r.GuestCount),
		TotalAmountCents:   r.TotalAmountCents,
		DepositAmountCents: r.DepositAmountCents,
		DepositPaid:        r.DepositPaid,
		SpecialRequests:    r.SpecialRequests,
		Notes:              r.Notes,
		Status:             r.Status,
		BookedBy:           r.BookedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:               uuid.New(),
		ConfirmationCode: "BRXK7M2P",
		Type:             r.Type,
		ResourceID:       r.ResourceID,
		ResourceName:     r.ResourceName,
		GuestName:        r.GuestName,
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		GuestCount:       int32(r.GuestCount),
		Status:           r.Status,
	}
}

func textOrNull(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
