package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/service"
)

type ClientHandler struct {
	clients  ClientService
	orders   OrderService
	insights InsightService
	clock    service.Clock
}

func NewClientHandler(clients ClientService, orders OrderService, insights InsightService, clock service.Clock) *ClientHandler {
	if clock == nil {
		clock = service.SystemClock
	}
	return &ClientHandler{clients: clients, orders: orders, insights: insights, clock: clock}
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var input domain.Client
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client payload", "details": err.Error()})
		return
	}

	client, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "failed to create client", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var input domain.Client
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client payload", "details": err.Error()})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, "failed to update client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete client", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) Orders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch client orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *ClientHandler) Insight(c *gin.Context) {
	now, ok := requestTime(c, h.clock)
	if !ok {
		return
	}

	insight, err := h.insights.ClientInsight(c.Request.Context(), c.Param("id"), now)
	if err != nil {
		respondError(c, "failed to compute client insight", err)
		return
	}
	c.JSON(http.StatusOK, insight)
}
