package response

import (
	"time"

	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                 uuid.UUID   `json:"id"`
	ConfirmationCode   string      `json:"confirmationCode"`
	Type               string      `json:"type"`
	ResourceID         string      `json:"resourceId"`
	ResourceName       string      `json:"resourceName"`
	GuestID            string      `json:"guestId"`
	GuestName          string      `json:"guestName"`
	GuestEmail         string      `json:"guestEmail"`
	GuestPhone         *string     `json:"guestPhone,omitempty"`
	CheckIn            time.Time   `json:"checkIn"`
	CheckOut           time.Time   `json:"checkOut"`
	Nights             int         `json:"nights"`
	GuestCount         int32       `json:"guestCount"`
	TotalAmountCents   int64       `json:"totalAmountCents"`
	DepositAmountCents int64       `json:"depositAmountCents"`
	DepositPaid        bool        `json:"depositPaid"`
	SpecialRequests    *string     `json:"specialRequests,omitempty"`
	Notes              *string     `json:"notes,omitempty"`
	Status             string      `json:"status"`
	CheckedInAt        *time.Time  `json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time  `json:"checkedOutAt,omitempty"`
	CancelledAt        *time.Time  `json:"cancelledAt,omitempty"`
	CancellationReason *string     `json:"cancellationReason,omitempty"`
	Permissions        Permissions `json:"permissions"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// Permissions mirrors the domain predicates so clients can gate actions
// without re-implementing the state machine.
type Permissions struct {
	CanCancel   bool `json:"canCancel"`
	CanModify   bool `json:"canModify"`
	CanCheckIn  bool `json:"canCheckIn"`
	CanCheckOut bool `json:"canCheckOut"`
}

type ReservationListResponse struct {
	ID               uuid.UUID `json:"id"`
	ConfirmationCode string    `json:"confirmationCode"`
	Type             string    `json:"type"`
	ResourceID       string    `json:"resourceId"`
	ResourceName     string    `json:"resourceName"`
	GuestName        string    `json:"guestName"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	GuestCount       int32     `json:"guestCount"`
	Status           string    `json:"status"`
}

func FromReservationView(rm *queries.ReservationView, now time.Time) *ReservationResponse {
	status := reservation.Status(rm.Status)

	return &ReservationResponse{
		ID:                 rm.ID,
		ConfirmationCode:   rm.ConfirmationCode,
		Type:               rm.Type,
		ResourceID:         rm.ResourceID,
		ResourceName:       rm.ResourceName,
		GuestID:            rm.GuestID,
		GuestName:          rm.GuestName,
		GuestEmail:         rm.GuestEmail,
		GuestPhone:         rm.GuestPhone,
		CheckIn:            rm.CheckIn,
		CheckOut:           rm.CheckOut,
		Nights:             reservation.NightsBetween(rm.CheckIn, rm.CheckOut),
		GuestCount:         rm.GuestCount,
		TotalAmountCents:   rm.TotalAmountCents,
		DepositAmountCents: rm.DepositAmountCents,
		DepositPaid:        rm.DepositPaid,
		SpecialRequests:    rm.SpecialRequests,
		Notes:              rm.Notes,
		Status:             rm.Status,
		CheckedInAt:        rm.CheckedInAt,
		CheckedOutAt:       rm.CheckedOutAt,
		CancelledAt:        rm.CancelledAt,
		CancellationReason: rm.CancellationReason,
		Permissions: Permissions{
			CanCancel:   reservation.CanCancel(status),
			CanModify:   reservation.CanModify(status),
			CanCheckIn:  reservation.CanCheckIn(status, rm.CheckIn, now),
			CanCheckOut: reservation.CanCheckOut(status),
		},
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:               rm.ID,
		ConfirmationCode: rm.ConfirmationCode,
		Type:             rm.Type,
		ResourceID:       rm.ResourceID,
		ResourceName:     rm.ResourceName,
		GuestName:        rm.GuestName,
		CheckIn:          rm.CheckIn,
		CheckOut:         rm.CheckOut,
		GuestCount:       rm.GuestCount,
		Status:           rm.Status,
	}
}

func FromReservationListItems(rms []*queries.ReservationListItem) []*ReservationListResponse {
	result := make([]*ReservationListResponse, len(rms))
	for i, rm := range rms {
		result[i] = FromReservationListItem(rm)
	}
	return result
}
