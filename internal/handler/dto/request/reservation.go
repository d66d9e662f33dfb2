package request

import (
	"strings"
	"time"

	"resort-reservations/internal/usecase/shared"
)

type CreateReservationRequest struct {
	Type               string    `json:"type" binding:"required"`
	ResourceID         string    `json:"resource_id" binding:"required"`
	ResourceName       string    `json:"resource_name" binding:"required"`
	GuestID            string    `json:"guest_id" binding:"required"`
	GuestName          string    `json:"guest_name" binding:"required"`
	GuestEmail         string    `json:"guest_email" binding:"required,email"`
	GuestPhone         *string   `json:"guest_phone,omitempty"`
	CheckIn            time.Time `json:"check_in" binding:"required"`
	CheckOut           time.Time `json:"check_out" binding:"required"`
	GuestCount         int       `json:"guest_count" binding:"required"`
	TotalAmountCents   int64     `json:"total_amount_cents"`
	DepositAmountCents *int64    `json:"deposit_amount_cents,omitempty"`
	SpecialRequests    *string   `json:"special_requests,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
}

type UpdateReservationRequest struct {
	GuestName          *string    `json:"guest_name,omitempty"`
	GuestEmail         *string    `json:"guest_email,omitempty"`
	GuestPhone         *string    `json:"guest_phone,omitempty"`
	CheckIn            *time.Time `json:"check_in,omitempty"`
	CheckOut           *time.Time `json:"check_out,omitempty"`
	GuestCount         *int32     `json:"guest_count,omitempty"`
	TotalAmountCents   *int64     `json:"total_amount_cents,omitempty"`
	DepositAmountCents *int64     `json:"deposit_amount_cents,omitempty"`
	SpecialRequests    *string    `json:"special_requests,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

func (r UpdateReservationRequest) ToChanges() shared.ReservationChanges {
	return shared.ReservationChanges{
		GuestName:          r.GuestName,
		GuestEmail:         r.GuestEmail,
		GuestPhone:         r.GuestPhone,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		GuestCount:         r.GuestCount,
		TotalAmountCents:   r.TotalAmountCents,
		DepositAmountCents: r.DepositAmountCents,
		SpecialRequests:    r.SpecialRequests,
		Notes:              r.Notes,
	}
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (r CancelReservationRequest) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}
