package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shophub-api/internal/pkg/response"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GET /cart/:userId
func (h *Handler) Get(c *gin.Context) {
	res, err := h.service.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /cart/toggle
func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid toggle payload", err.Error())
		return
	}

	res, err := h.service.Toggle(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /cart/update
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid update payload", err.Error())
		return
	}

	res, err := h.service.SetQuantity(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /cart/remove
func (h *Handler) Remove(c *gin.Context) {
	var req RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid remove payload", err.Error())
		return
	}

	res, err := h.service.Remove(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /cart/:userId
func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: []ResolvedLine{}, Count: 0})
}

// GET /cart/:userId/count
func (h *Handler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: count})
}

// POST /cart/quote
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid quote payload", err.Error())
		return
	}

	res, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
