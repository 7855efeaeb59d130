package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/dto"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

var ticketStatuses = []models.TicketStatus{
	models.TicketStatusPending,
	models.TicketStatusApproved,
	models.TicketStatusRejected,
	models.TicketStatusInProgress,
	models.TicketStatusResolved,
	models.TicketStatusClosed,
}

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

func (h *TicketHandler) List(c *gin.Context) {
	taskID, err := queryID(c, "taskId")
	if err != nil {
		fail(c, err)
		return
	}
	status, err := queryEnum(c, "status", ticketStatuses...)
	if err != nil {
		fail(c, err)
		return
	}

	tickets, total, err := h.tickets.List(c.Request.Context(), caller(c), services.ListTicketsInput{
		TaskID: taskID,
		Status: status,
		Page:   utils.GetPaginationParams(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	list(c, "Tickets retrieved successfully", dto.ToTicketDTOs(tickets), total)
}

func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.tickets.Get(c.Request.Context(), caller(c), middleware.IDParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Ticket retrieved successfully", dto.ToTicketDTO(*ticket))
}

func (h *TicketHandler) Create(c *gin.Context) {
	req := middleware.Body[dto.CreateTicketRequest](c)

	ticket, err := h.tickets.Create(c.Request.Context(), caller(c), services.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Notes:       req.Notes,
		TaskID:      req.TaskID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Ticket created successfully", dto.ToTicketDTO(*ticket))
}

func (h *TicketHandler) Update(c *gin.Context) {
	req := middleware.Body[dto.UpdateTicketRequest](c)

	ticket, err := h.tickets.Update(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), services.UpdateTicketInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		Notes:        req.Notes,
		TaskID:       req.TaskID,
		ApprovedByID: req.ApprovedByID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Ticket updated successfully", dto.ToTicketDTO(*ticket))
}

func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.tickets.Delete(c.Request.Context(), caller(c), middleware.IDParam(c, "id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Ticket deleted successfully", nil)
}
