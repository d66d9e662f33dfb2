//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"resort-reservations/internal/domain/staff"
	"resort-reservations/internal/handler/api"
	resdto "resort-reservations/internal/handler/dto/response"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/internal/usecase/commands"
	"resort-reservations/internal/usecase/queries"
	"resort-reservations/tests/common/builder"
	"resort-reservations/tests/common/httptest"
	"resort-reservations/tests/common/testutil"
	commandsmock "resort-reservations/tests/mock/commands"
	queriesmock "resort-reservations/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(
		s.mockCommands,
		s.mockQueries,
		clock.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)),
	)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("staff_id", uuid.New())
		c.Set("staff_role", staff.RoleFrontDesk)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations", authMiddleware, s.handler.ListReservations)
	s.router.GET("/reservations/code/:code", authMiddleware, s.handler.GetReservationByCode)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.PATCH("/reservations/:id", authMiddleware, s.handler.UpdateReservation)
	s.router.DELETE("/reservations/:id", authMiddleware, s.handler.DeleteReservation)
	s.router.POST("/reservations/:id/confirm", authMiddleware, s.handler.ConfirmReservation)
	s.router.POST("/reservations/:id/check-in", authMiddleware, s.handler.CheckInReservation)
	s.router.POST("/reservations/:id/cancel", authMiddleware, s.handler.CancelReservation)
	s.router.POST("/reservations/:id/deposit", authMiddleware, s.handler.RecordDeposit)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReservationBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.ReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal("BRXK7M2P", resp.ConfirmationCode)
		s.Equal(4, resp.Nights)
		s.True(resp.Permissions.CanCancel)
	})

	s.Run("validation: missing required fields return 400", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing type", mutate: testutil.Field("type", nil)},
			{name: "missing resource_id", mutate: testutil.Field("resource_id", nil)},
			{name: "missing guest_name", mutate: testutil.Field("guest_name", nil)},
			{name: "missing check_in", mutate: testutil.Field("check_in", nil)},
			{name: "malformed check_in", mutate: testutil.Field("check_in", "not-a-date")},
			{name: "invalid email", mutate: testutil.Field("guest_email", "nope")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("conflict: overlapping reservation returns 409", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrResourceUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("invalid dates return 400", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidDateRange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	returnView := builder.NewReservationBuilder().BuildViewQuery()

	s.Run("success: returns reservation by ID", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+returnView.ID.String(), nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: returns reservation by code", func() {
		s.mockQueries.EXPECT().GetByCode(gomock.Any(), "BRXK7M2P").
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/code/BRXK7M2P", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("invalid UUID returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestList() {
	s.Run("status filter returns 200", func() {
		items := []*queries.ReservationListItem{builder.NewReservationBuilder().BuildListItem()}
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?status=pending", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("complete date range returns 200", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=2026-02-01T00:00:00Z&to=2026-02-05T00:00:00Z", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("date range with only from returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?from=2026-02-01T00:00:00Z", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("date range with only to returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?to=2026-02-05T00:00:00Z", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *ReservationHandlerTestSuite) TestTransitions() {
	returnView := builder.NewReservationBuilder().BuildViewQuery()
	id := returnView.ID

	s.Run("confirm returns 200", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/confirm", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("invalid transition returns 422", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), id).
			Return(nil, commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/confirm", nil, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("check-in passes staff id from context", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), id, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/check-in", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("cancel requires a reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/cancel", map[string]any{}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("cancel with reason returns 200", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, "guest request", gomock.Any()).
			Return(returnView, nil).Times(1)

		body := map[string]any{"reason": "guest request"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/cancel", body, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("deposit already paid returns 422", func() {
		s.mockCommands.EXPECT().RecordDeposit(gomock.Any(), id).
			Return(nil, commands.ErrDepositAlreadyPaid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/"+id.String()+"/deposit", nil, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

// ================================================================================
// TestUpdateAndDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdateAndDelete() {
	returnView := builder.NewReservationBuilder().BuildViewQuery()
	id := returnView.ID

	s.Run("update returns 200", func() {
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), id, gomock.Any()).
			Return(returnView, nil).Times(1)

		body := builder.NewReservationBuilder().BuildUpdateRequestDTO()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+id.String(), body, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("update of finalized reservation returns 422", func() {
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrInvalidStatusForModification).Times(1)

		body := builder.NewReservationBuilder().BuildUpdateRequestDTO()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+id.String(), body, "bearer-token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("update of missing reservation returns 404", func() {
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), id, gomock.Any()).
			Return(nil, commands.ErrReservationNotFound).Times(1)

		body := builder.NewReservationBuilder().BuildUpdateRequestDTO()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/reservations/"+id.String(), body, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("delete returns 204", func() {
		s.mockCommands.EXPECT().DeleteReservation(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("unexpected error returns 500", func() {
		s.mockCommands.EXPECT().DeleteReservation(gomock.Any(), id).
			Return(errors.New("boom")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
