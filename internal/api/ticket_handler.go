package api

import (
	"net/http"

	"CricketPredict/internal/model"
	"CricketPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TicketHandler 工单与管理端对账
type TicketHandler struct {
	ticketService    *service.TicketService
	reconcileService *service.ReconcileService
	logger           *logrus.Logger
}

func NewTicketHandler(ticketService *service.TicketService, reconcileService *service.ReconcileService, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{ticketService: ticketService, reconcileService: reconcileService, logger: logger}
}

type openTicketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type respondTicketRequest struct {
	Reply  string             `json:"reply"`
	Status model.TicketStatus `json:"status" binding:"required"`
}

// OpenTicket POST /api/tickets
func (h *TicketHandler) OpenTicket(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req openTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	t, err := h.ticketService.Open(c.Request.Context(), userID, req.Subject, req.Message)
	if err != nil {
		respondError(c, h.logger, "OpenTicket", err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ListTickets GET /api/admin/tickets?status=open&page=1&page_size=20
func (h *TicketHandler) ListTickets(c *gin.Context) {
	page, pageSize := pageParams(c)
	list, total, err := h.ticketService.ListForAdmin(c.Request.Context(), model.TicketStatus(c.Query("status")), page, pageSize)
	if err != nil {
		respondError(c, h.logger, "ListTickets", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list, "total": total})
}

// RespondTicket PATCH /api/admin/tickets/:id
func (h *TicketHandler) RespondTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req respondTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	t, err := h.ticketService.Respond(c.Request.Context(), id, req.Reply, req.Status)
	if err != nil {
		respondError(c, h.logger, "RespondTicket", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Reconcile POST /api/admin/reconcile 立即执行一次积分对账
func (h *TicketHandler) Reconcile(c *gin.Context) {
	report, err := h.reconcileService.Run(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Reconcile", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
