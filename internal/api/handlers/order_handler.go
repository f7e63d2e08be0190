package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/domain"
)

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns all orders, filtered by ?client_id when given.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), strings.TrimSpace(c.Query("client_id")))
	if err != nil {
		respondError(c, "failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input domain.Order
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload", "details": err.Error()})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, "failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var input domain.Order
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload", "details": err.Error()})
		return
	}

	order, err := h.orders.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, "failed to update order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete order", err)
		return
	}
	c.Status(http.StatusNoContent)
}
