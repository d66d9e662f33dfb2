package queries

import (
	"context"
	"time"

	"resort-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	ConfirmationCode   string     `json:"confirmation_code"`
	Type               string     `json:"type"`
	ResourceID         string     `json:"resource_id"`
	ResourceName       string     `json:"resource_name"`
	GuestID            string     `json:"guest_id"`
	GuestName          string     `json:"guest_name"`
	GuestEmail         string     `json:"guest_email"`
	GuestPhone         *string    `json:"guest_phone,omitempty"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           time.Time  `json:"check_out"`
	GuestCount         int32      `json:"guest_count"`
	TotalAmountCents   int64      `json:"total_amount_cents"`
	DepositAmountCents int64      `json:"deposit_amount_cents"`
	DepositPaid        bool       `json:"deposit_paid"`
	SpecialRequests    *string    `json:"special_requests,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	Status             string     `json:"status"`
	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy        *uuid.UUID `json:"checked_in_by,omitempty"`
	CheckedOutAt       *time.Time `json:"checked_out_at,omitempty"`
	CheckedOutBy       *uuid.UUID `json:"checked_out_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	BookedBy           uuid.UUID  `json:"booked_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID `json:"id"`
	ConfirmationCode string    `json:"confirmation_code"`
	Type             string    `json:"type"`
	ResourceID       string    `json:"resource_id"`
	ResourceName     string    `json:"resource_name"`
	GuestName        string    `json:"guest_name"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	GuestCount       int32     `json:"guest_count"`
	Status           string    `json:"status"`
}

// ListFilter narrows List to at most one dimension; zero value lists all.
type ListFilter struct {
	GuestID    *string
	ResourceID *string
	Status     *string
	Type       *string
	RangeStart *time.Time
	RangeEnd   *time.Time
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	GetByCode(ctx context.Context, code string) (*ReservationView, error)
	List(ctx context.Context, filter ListFilter) ([]*ReservationListItem, error)
	Upcoming(ctx context.Context, guestID string) ([]*ReservationListItem, error)
	TodayCheckIns(ctx context.Context) ([]*ReservationListItem, error)
	TodayCheckOuts(ctx context.Context) ([]*ReservationListItem, error)
	Pending(ctx context.Context) ([]*ReservationListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCode(ctx context.Context, code string) (*ReservationView, error)
	FindAll(ctx context.Context) ([]*ReservationListItem, error)
	FindByGuest(ctx context.Context, guestID string) ([]*ReservationListItem, error)
	FindByResource(ctx context.Context, resourceID string) ([]*ReservationListItem, error)
	FindByStatus(ctx context.Context, status string) ([]*ReservationListItem, error)
	FindByType(ctx context.Context, reservationType string) ([]*ReservationListItem, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*ReservationListItem, error)
	FindUpcomingByGuest(ctx context.Context, guestID string, now time.Time) ([]*ReservationListItem, error)
	FindCheckInsBetween(ctx context.Context, dayStart, dayEnd time.Time) ([]*ReservationListItem, error)
	FindCheckOutsBetween(ctx context.Context, dayStart, dayEnd time.Time) ([]*ReservationListItem, error)
	FindPending(ctx context.Context) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo  ReservationViewRepo
	clock clock.Clock
}

func NewReservationQueries(repo ReservationViewRepo, clock clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, clock: clock}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) GetByCode(ctx context.Context, code string) (*ReservationView, error) {
	return q.repo.FindByCode(ctx, code)
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ListFilter) ([]*ReservationListItem, error) {
	switch {
	case filter.GuestID != nil:
		return q.repo.FindByGuest(ctx, *filter.GuestID)
	case filter.ResourceID != nil:
		return q.repo.FindByResource(ctx, *filter.ResourceID)
	case filter.Status != nil:
		return q.repo.FindByStatus(ctx, *filter.Status)
	case filter.Type != nil:
		return q.repo.FindByType(ctx, *filter.Type)
	case filter.RangeStart != nil && filter.RangeEnd != nil:
		return q.repo.FindByDateRange(ctx, *filter.RangeStart, *filter.RangeEnd)
	default:
		return q.repo.FindAll(ctx)
	}
}

func (q *reservationQueriesImpl) Upcoming(ctx context.Context, guestID string) ([]*ReservationListItem, error) {
	return q.repo.FindUpcomingByGuest(ctx, guestID, q.clock.Now())
}

func (q *reservationQueriesImpl) TodayCheckIns(ctx context.Context) ([]*ReservationListItem, error) {
	dayStart, dayEnd := todayBounds(q.clock.Now())
	return q.repo.FindCheckInsBetween(ctx, dayStart, dayEnd)
}

func (q *reservationQueriesImpl) TodayCheckOuts(ctx context.Context) ([]*ReservationListItem, error) {
	dayStart, dayEnd := todayBounds(q.clock.Now())
	return q.repo.FindCheckOutsBetween(ctx, dayStart, dayEnd)
}

func (q *reservationQueriesImpl) Pending(ctx context.Context) ([]*ReservationListItem, error) {
	return q.repo.FindPending(ctx)
}

// todayBounds returns [start of today, start of tomorrow) in now's location.
func todayBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}
