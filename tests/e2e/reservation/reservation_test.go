//go:build e2e

package reservation_test

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/domain/staff"
	resdto "resort-reservations/internal/handler/dto/response"
	"resort-reservations/tests/common/authtest"
	"resort-reservations/tests/common/builder"
	"resort-reservations/tests/common/httptest"
	"resort-reservations/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var confirmationCodePattern = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{8}$`)

type ReservationE2ETestSuite struct {
	e2e.SharedSuite
	frontDeskToken string
	managerToken   string
}

func (s *ReservationE2ETestSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())

	jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
	s.frontDeskToken = jwtHelper.GenerateToken(s.T(), uuid.New(), staff.RoleFrontDesk)
	s.managerToken = jwtHelper.GenerateToken(s.T(), uuid.New(), staff.RoleManager)
}

func TestReservationE2ESuite(t *testing.T) {
	suite.Run(t, new(ReservationE2ETestSuite))
}

func (s *ReservationE2ETestSuite) createReservation(body any) resdto.ReservationResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", body, s.frontDeskToken)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var resp resdto.ReservationResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
	return resp
}

func (s *ReservationE2ETestSuite) post(path, token string, body any) *resdto.ReservationResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, path, body, token)
	if rec.Code != http.StatusOK {
		s.T().Logf("POST %s -> %d: %s", path, rec.Code, rec.Body.String())
		return nil
	}
	var resp resdto.ReservationResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
	return &resp
}

// startedStay moves the booking window so the check-in date has already
// arrived, making check-in permitted. Times are truncated to microseconds
// to survive the timestamptz round trip unchanged.
func startedStay(b *builder.ReservationBuilder) {
	b.CheckIn = time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Microsecond)
	b.CheckOut = time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond)
}

// futureStay moves the booking window two days out.
func futureStay(b *builder.ReservationBuilder) {
	b.CheckIn = time.Now().UTC().Add(48 * time.Hour).Truncate(time.Microsecond)
	b.CheckOut = time.Now().UTC().Add(96 * time.Hour).Truncate(time.Microsecond)
}

func (s *ReservationE2ETestSuite) TestBookingLifecycle() {
	s.Run("create, conflict, adjacency, then walk the full lifecycle", func() {
		base := builder.NewReservationBuilder().With(startedStay)

		created := s.createReservation(base.BuildCreateRequestDTO())
		s.Regexp(confirmationCodePattern, created.ConfirmationCode)

		expected := &resdto.ReservationResponse{
			Type:               "room",
			ResourceID:         "room-101",
			ResourceName:       "Ocean View King",
			GuestID:            "guest-42",
			GuestName:          "Dana Whitfield",
			GuestEmail:         "dana@example.com",
			CheckIn:            base.CheckIn,
			CheckOut:           base.CheckOut,
			Nights:             reservation.NightsBetween(base.CheckIn, base.CheckOut),
			GuestCount:         2,
			TotalAmountCents:   89900,
			DepositAmountCents: 20000,
			Status:             "pending",
			Permissions:        resdto.Permissions{CanCancel: true, CanModify: true},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.ReservationResponse{}, "ID", "ConfirmationCode", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			s.T().Errorf("Reservation response mismatch (-want +got):\n%s", diff)
		}

		// Same resource, overlapping window.
		overlap := base.Clone().With(func(b *builder.ReservationBuilder) {
			b.GuestID = "guest-77"
			b.CheckIn = b.CheckIn.Add(12 * time.Hour)
			b.CheckOut = b.CheckOut.Add(12 * time.Hour)
		})
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", overlap.BuildCreateRequestDTO(), s.frontDeskToken)
		s.Equal(http.StatusConflict, rec.Code)

		// Back to back on the same resource is allowed.
		adjacent := base.Clone().With(func(b *builder.ReservationBuilder) {
			b.GuestID = "guest-88"
			b.CheckIn = base.CheckOut
			b.CheckOut = base.CheckOut.Add(48 * time.Hour)
		})
		s.createReservation(adjacent.BuildCreateRequestDTO())

		// Different resource may overlap freely.
		otherRoom := base.Clone().With(func(b *builder.ReservationBuilder) {
			b.ResourceID = "room-102"
		})
		s.createReservation(otherRoom.BuildCreateRequestDTO())

		idPath := "/api/reservations/" + created.ID.String()

		// Cannot check out before checking in.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, idPath+"/check-out", nil, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		confirmed := s.post(idPath+"/confirm", s.frontDeskToken, nil)
		s.Require().NotNil(confirmed)
		s.Equal("confirmed", confirmed.Status)
		s.True(confirmed.Permissions.CanCheckIn)

		checkedIn := s.post(idPath+"/check-in", s.frontDeskToken, nil)
		s.Require().NotNil(checkedIn)
		s.Equal("checked_in", checkedIn.Status)
		s.NotNil(checkedIn.CheckedInAt)

		checkedOut := s.post(idPath+"/check-out", s.frontDeskToken, nil)
		s.Require().NotNil(checkedOut)
		s.Equal("checked_out", checkedOut.Status)
		s.False(checkedOut.Permissions.CanCancel)

		// Terminal: confirming again must fail.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, idPath+"/confirm", nil, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("check-in before the check-in date is rejected", func() {
		created := s.createReservation(builder.NewReservationBuilder().With(futureStay).BuildCreateRequestDTO())
		idPath := "/api/reservations/" + created.ID.String()

		confirmed := s.post(idPath+"/confirm", s.frontDeskToken, nil)
		s.Require().NotNil(confirmed)
		s.False(confirmed.Permissions.CanCheckIn)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, idPath+"/check-in", nil, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *ReservationE2ETestSuite) TestCancellationAndDeposits() {
	s.Run("deposit is recorded once and refundable", func() {
		created := s.createReservation(builder.NewReservationBuilder().With(futureStay).BuildCreateRequestDTO())
		idPath := "/api/reservations/" + created.ID.String()

		paid := s.post(idPath+"/deposit", s.frontDeskToken, nil)
		s.Require().NotNil(paid)
		s.True(paid.DepositPaid)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, idPath+"/deposit", nil, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, idPath+"/deposit", nil, s.frontDeskToken)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("deposit defaults to zero when omitted", func() {
		req := builder.NewReservationBuilder().With(futureStay).BuildCreateRequestDTO()
		req.DepositAmountCents = nil
		created := s.createReservation(req)
		s.Zero(created.DepositAmountCents)
		s.False(created.DepositPaid)

		// Nothing owed, so there is no deposit to record.
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+created.ID.String()+"/deposit", nil, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("cancellation records reason and frees the slot", func() {
		base := builder.NewReservationBuilder().With(futureStay)
		created := s.createReservation(base.BuildCreateRequestDTO())
		idPath := "/api/reservations/" + created.ID.String()

		cancelled := s.post(idPath+"/cancel", s.frontDeskToken, map[string]any{"reason": "guest request"})
		s.Require().NotNil(cancelled)
		s.Equal("cancelled", cancelled.Status)
		s.Require().NotNil(cancelled.CancellationReason)
		s.Equal("guest request", *cancelled.CancellationReason)

		// Cancelled bookings do not block the calendar.
		rebooked := base.Clone().With(func(b *builder.ReservationBuilder) { b.GuestID = "guest-99" })
		s.createReservation(rebooked.BuildCreateRequestDTO())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, idPath+"/cancel", map[string]any{"reason": "again"}, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *ReservationE2ETestSuite) TestUpdateRules() {
	s.Run("date changes re-check availability", func() {
		first := builder.NewReservationBuilder().With(futureStay)
		s.createReservation(first.BuildCreateRequestDTO())

		second := first.Clone().With(func(b *builder.ReservationBuilder) {
			b.GuestID = "guest-77"
			b.CheckIn = first.CheckOut
			b.CheckOut = first.CheckOut.Add(48 * time.Hour)
		})
		secondResp := s.createReservation(second.BuildCreateRequestDTO())

		// Sliding the second booking back onto the first must conflict.
		overlapStart := first.CheckIn.Add(time.Hour)
		body := map[string]any{"check_in": overlapStart.Format(time.RFC3339)}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/reservations/"+secondResp.ID.String(), body, s.frontDeskToken)
		s.Equal(http.StatusConflict, rec.Code)

		// Non-date fields update freely.
		body = map[string]any{"guest_name": "Morgan Reyes"}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, "/api/reservations/"+secondResp.ID.String(), body, s.frontDeskToken)
		s.Equal(http.StatusOK, rec.Code)

		var updated resdto.ReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &updated)
		s.Equal("Morgan Reyes", updated.GuestName)
	})

	s.Run("updates are rejected after check-in", func() {
		created := s.createReservation(builder.NewReservationBuilder().With(startedStay).BuildCreateRequestDTO())
		idPath := "/api/reservations/" + created.ID.String()

		s.Require().NotNil(s.post(idPath+"/confirm", s.frontDeskToken, nil))
		s.Require().NotNil(s.post(idPath+"/check-in", s.frontDeskToken, nil))

		body := map[string]any{"guest_name": "Too Late"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, idPath, body, s.frontDeskToken)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *ReservationE2ETestSuite) TestLookupsAndDeletion() {
	s.Run("lookup by code and filtered lists", func() {
		created := s.createReservation(builder.NewReservationBuilder().With(futureStay).BuildCreateRequestDTO())

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/code/"+created.ConfirmationCode, nil, s.frontDeskToken)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations?status=pending", nil, s.frontDeskToken)
		s.Equal(http.StatusOK, rec.Code)

		var items []resdto.ReservationListResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &items)
		s.Len(items, 1)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/upcoming?guest_id=guest-42", nil, s.frontDeskToken)
		s.Equal(http.StatusOK, rec.Code)
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &items)
		s.Len(items, 1)
	})

	s.Run("deletion needs at least manager role", func() {
		created := s.createReservation(builder.NewReservationBuilder().With(futureStay).BuildCreateRequestDTO())
		idPath := "/api/reservations/" + created.ID.String()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, idPath, nil, s.frontDeskToken)
		s.Equal(http.StatusForbidden, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, idPath, nil, s.managerToken)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, idPath, nil, s.frontDeskToken)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ReservationE2ETestSuite) TestAuthRequired() {
	s.Run("requests without a token are rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
