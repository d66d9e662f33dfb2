package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	reqdto "resort-reservations/internal/handler/dto/request"
	resdto "resort-reservations/internal/handler/dto/response"
	"resort-reservations/internal/handler/middleware"
	"resort-reservations/internal/infra"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/internal/usecase/commands"
	"resort-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
	clock    clock.Clock
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	qs queries.ReservationQueries,
	clk clock.Clock,
) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qs,
		clock:    clk,
	}
}

// @Summary Create reservation
// @Description Book a resource for a guest over a stay period
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.CreateReservation(c.Request.Context(), req, staffID)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Get reservation by confirmation code
// @Description Look up a reservation by its confirmation code
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param code path string true "Confirmation code"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/code/{code} [get]
func (h *ReservationHandler) GetReservationByCode(c *gin.Context) {
	code := c.Param("code")

	view, err := h.queries.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary List reservations
// @Description List reservations, optionally filtered by guest, resource, status, type or date range
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param guest_id query string false "Guest ID"
// @Param resource_id query string false "Resource ID"
// @Param status query string false "Status"
// @Param type query string false "Reservation type"
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	filter, err := buildListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid filter parameters",
		})
		return
	}

	items, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Upcoming reservations for a guest
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param guest_id query string true "Guest ID"
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations/upcoming [get]
func (h *ReservationHandler) UpcomingReservations(c *gin.Context) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "guest_id is required",
		})
		return
	}

	items, err := h.queries.Upcoming(c.Request.Context(), guestID)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Today's check-ins
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations/today/check-ins [get]
func (h *ReservationHandler) TodayCheckIns(c *gin.Context) {
	items, err := h.queries.TodayCheckIns(c.Request.Context())
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Today's check-outs
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations/today/check-outs [get]
func (h *ReservationHandler) TodayCheckOuts(c *gin.Context) {
	items, err := h.queries.TodayCheckOuts(c.Request.Context())
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Pending reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations/pending [get]
func (h *ReservationHandler) PendingReservations(c *gin.Context) {
	items, err := h.queries.Pending(c.Request.Context())
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}

// @Summary Update reservation
// @Description Partially update a pending or confirmed reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to update"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.UpdateReservation(c.Request.Context(), id, req)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Delete reservation
// @Description Permanently remove a reservation record
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteReservation(c.Request.Context(), id); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Confirm reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.commands.Confirm(c.Request.Context(), id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Check in guest
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/check-in [post]
func (h *ReservationHandler) CheckInReservation(c *gin.Context) {
	h.transitionWithStaff(c, h.commands.CheckIn)
}

// @Summary Check out guest
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/check-out [post]
func (h *ReservationHandler) CheckOutReservation(c *gin.Context) {
	h.transitionWithStaff(c, h.commands.CheckOut)
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancellation reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cancellation reason is required",
		})
		return
	}

	view, err := h.commands.Cancel(c.Request.Context(), id, req.TrimmedReason(), staffID)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Mark reservation as no-show
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/no-show [post]
func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.commands.MarkNoShow(c.Request.Context(), id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Record deposit payment
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/deposit [post]
func (h *ReservationHandler) RecordDeposit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.commands.RecordDeposit(c.Request.Context(), id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

// @Summary Refund deposit
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/deposit [delete]
func (h *ReservationHandler) RefundDeposit(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.commands.RefundDeposit(c.Request.Context(), id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

func (h *ReservationHandler) transitionWithStaff(
	c *gin.Context,
	op func(ctx context.Context, id uuid.UUID, staffID uuid.UUID) (*queries.ReservationView, error),
) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := op(c.Request.Context(), id, staffID)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.clock.Now()))
}

func (h *ReservationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReservationHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrResourceUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not available for the requested period",
		})
	case errors.Is(err, commands.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Check-out must be after check-in",
		})
	case errors.Is(err, commands.ErrInvalidGuestCount):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Guest count must be at least 1",
		})
	case errors.Is(err, commands.ErrInvalidReservationType):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown reservation type",
		})
	case errors.Is(err, commands.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Amounts cannot be negative",
		})
	case errors.Is(err, commands.ErrInvalidStatusForModification):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation can no longer be modified",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, commands.ErrDepositAlreadyPaid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Deposit has already been recorded",
		})
	case errors.Is(err, commands.ErrNoDepositRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Reservation requires no deposit",
		})
	case errors.Is(err, commands.ErrNothingToRefund):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Deposit has not been paid",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *ReservationHandler) respondQueryError(c *gin.Context, err error) {
	if infra.IsKind(err, infra.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}

func buildListFilter(c *gin.Context) (queries.ListFilter, error) {
	var filter queries.ListFilter

	if v := c.Query("guest_id"); v != "" {
		filter.GuestID = &v
	}
	if v := c.Query("resource_id"); v != "" {
		filter.ResourceID = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("type"); v != "" {
		filter.Type = &v
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return queries.ListFilter{}, err
		}
		filter.RangeStart = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return queries.ListFilter{}, err
		}
		filter.RangeEnd = &t
	}

	// A date-range filter needs both bounds; half a range would silently list
	// everything.
	if (filter.RangeStart == nil) != (filter.RangeEnd == nil) {
		return queries.ListFilter{}, errors.New("from and to must be supplied together")
	}

	return filter, nil
}
