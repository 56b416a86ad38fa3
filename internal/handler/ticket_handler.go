package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"ticketdesk/internal/auth"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/flash"
	"ticketdesk/internal/model"
	"ticketdesk/internal/service"
)

// TicketHandler bundles the ticket HTTP handlers.
type TicketHandler struct {
	tickets service.TicketService
	flashes flash.StoreInterface
}

// NewTicketHandler creates a ticket handler.
func NewTicketHandler(tickets service.TicketService, flashes flash.StoreInterface) *TicketHandler {
	return &TicketHandler{tickets: tickets, flashes: flashes}
}

// CreateTicketRequest represents a new ticket submission.
type CreateTicketRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
}

// UpdateTicketRequest represents a partial ticket update. Omitted fields keep
// their stored values.
type UpdateTicketRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Status      *string `json:"status" form:"status" validate:"omitempty,oneof=open in_progress closed"`
}

// TicketListResponse is the ticket list view payload.
type TicketListResponse struct {
	Tickets []model.Ticket  `json:"tickets"`
	Flash   []flash.Message `json:"flash"`
}

// TicketResponse is the single ticket view payload.
type TicketResponse struct {
	Ticket *model.Ticket   `json:"ticket"`
	Flash  []flash.Message `json:"flash"`
}

// List godoc
// @Summary List tickets
// @Description Own tickets for regular users, all tickets for admins.
// @Tags tickets
// @Produce json
// @Success 200 {object} TicketListResponse
// @Router /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	tickets, err := h.tickets.List(c.Request().Context(), actor)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TicketListResponse{
		Tickets: tickets,
		Flash:   h.flashes.PopAll(c.Request().Context(), flash.Scope(c)),
	})
}

// Create godoc
// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body CreateTicketRequest true "Ticket data"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	var req CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.tickets.Create(c.Request().Context(), actor, req.Title, req.Description); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return h.redirectFlash(c, flash.CategorySuccess, "ticket created", "/tickets")
}

// Get godoc
// @Summary Fetch a single ticket
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} TicketResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	id, err := ticketID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ticket, err := h.tickets.Get(c.Request().Context(), actor, id)
	if err != nil {
		return h.handleTicketError(c, err)
	}

	return c.JSON(http.StatusOK, TicketResponse{
		Ticket: ticket,
		Flash:  h.flashes.PopAll(c.Request().Context(), flash.Scope(c)),
	})
}

// Update godoc
// @Summary Update a ticket
// @Description Partial update: title, description and status may be supplied independently.
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param request body UpdateTicketRequest true "Fields to change"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Router /tickets/{id} [post]
func (h *TicketHandler) Update(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	id, err := ticketID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.TicketUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if _, err := h.tickets.Update(c.Request().Context(), actor, id, update); err != nil {
		if err == apperrors.ErrInvalidStatus {
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return h.handleTicketError(c, err)
	}

	return h.redirectFlash(c, flash.CategorySuccess, "ticket updated", fmt.Sprintf("/tickets/%d", id))
}

// Delete godoc
// @Summary Delete a ticket
// @Tags tickets
// @Param id path int true "Ticket ID"
// @Success 303
// @Failure 400 {object} errors.ErrorResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	id, err := ticketID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.tickets.Delete(c.Request().Context(), actor, id); err != nil {
		return h.handleTicketError(c, err)
	}

	return h.redirectFlash(c, flash.CategorySuccess, "ticket deleted", "/tickets")
}

// handleTicketError maps the two gate errors onto the flash+redirect
// contract: never a raw 403 or 404 on these routes.
func (h *TicketHandler) handleTicketError(c echo.Context, err error) error {
	switch err {
	case apperrors.ErrTicketNotFound, apperrors.ErrForbidden:
		return h.redirectFlash(c, flash.CategoryDanger, err.Error(), "/tickets")
	}
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func (h *TicketHandler) redirectFlash(c echo.Context, category, text, target string) error {
	_ = h.flashes.Push(c.Request().Context(), flash.Scope(c), category, text)
	return c.Redirect(http.StatusSeeOther, target)
}

func ticketID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
