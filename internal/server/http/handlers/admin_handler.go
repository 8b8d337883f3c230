package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/server/http/dto"
)

// AdminHandler serves shop management endpoints.
type AdminHandler struct {
	facade AdminFacade
	opts   Options
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade, opts Options) *AdminHandler {
	return &AdminHandler{facade: facade, opts: opts}
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, dto.OK("", toOrderResponses(orders)))
}

// Groups handles GET /api/admin/orders/groups.
func (h *AdminHandler) Groups(c *gin.Context) {
	groups, err := h.facade.OrderGroups(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}

	response := make([]dto.OrderGroupResponse, 0, len(groups))
	for _, g := range groups {
		response = append(response, dto.OrderGroupResponse{
			StudentName: g.StudentName,
			PhoneNumber: g.PhoneNumber,
			CreatedAt:   g.CreatedAt,
			OrderIDs:    g.IDs(),
			Orders:      toOrderResponses(g.Orders),
		})
	}
	c.JSON(http.StatusOK, dto.OK("", response))
}

// UpdateStatus handles PUT /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := h.facade.SetOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, dto.OK("Order status updated", toOrderResponse(*order)))
}

// BulkStatus handles PUT /api/admin/orders/bulk-status.
func (h *AdminHandler) BulkStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	result, err := h.facade.SetOrdersStatus(c.Request.Context(), req.OrderIDs, model.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}

	response := dto.BulkStatusResponse{
		Updated: len(result.Updated),
		Failed:  len(result.Failed),
		Results: make([]dto.BulkStatusResult, 0, len(result.Updated)+len(result.Failed)),
	}
	for _, o := range result.Updated {
		response.Results = append(response.Results, dto.BulkStatusResult{OrderID: o.ID, Success: true, Status: string(o.Status)})
	}
	for _, f := range result.Failed {
		response.Results = append(response.Results, dto.BulkStatusResult{OrderID: f.OrderID, Error: f.Err.Error()})
	}

	c.JSON(http.StatusOK, dto.OK(fmt.Sprintf("%d orders updated, %d failed", response.Updated, response.Failed), response))
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.opts, err, "Order not found")
		return
	}

	response := dto.StatsResponse{
		Total:       stats.Total,
		TotalCopies: stats.TotalCopies,
		ByStatus:    make(map[string]int, len(stats.ByStatus)),
		ByColorType: make(map[string]int, len(stats.ByColorType)),
	}
	for s, n := range stats.ByStatus {
		response.ByStatus[string(s)] = n
	}
	for ct, n := range stats.ByColorType {
		response.ByColorType[string(ct)] = n
	}
	c.JSON(http.StatusOK, dto.OK("", response))
}
