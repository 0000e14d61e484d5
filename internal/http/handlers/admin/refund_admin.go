package admin

import (
	"strconv"

	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/http/response"
	"github.com/vendora-market/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListRefunds 平台查询退款记录列表
func (h *Handler) ListRefunds(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	buyerID, _ := strconv.ParseUint(c.Query("buyer_id"), 10, 64)
	subOrderID, _ := strconv.ParseUint(c.Query("sub_order_id"), 10, 64)

	refunds, total, err := h.RefundService.List(repository.RefundListFilter{
		Page:       page,
		PageSize:   pageSize,
		BuyerID:    uint(buyerID),
		SubOrderID: uint(subOrderID),
		Status:     c.Query("status"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, refunds, shared.BuildPagination(page, pageSize, total))
}
