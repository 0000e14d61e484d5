package admin

import (
	"strconv"
	"time"

	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/http/response"
	"github.com/vendora-market/internal/repository"
	"github.com/vendora-market/internal/service"

	"github.com/gin-gonic/gin"
)

// SLAConfigRequest SLA 配置写入请求体
type SLAConfigRequest struct {
	CategoryID         *uint  `json:"category_id"`
	RequestType        string `json:"request_type"`
	FirstResponseHours int    `json:"first_response_hours" binding:"required"`
	ResolutionHours    int    `json:"resolution_hours" binding:"required"`
	IsActive           bool   `json:"is_active"`
}

func (r SLAConfigRequest) toInput() service.SLAConfigInput {
	return service.SLAConfigInput{
		CategoryID:         r.CategoryID,
		RequestType:        r.RequestType,
		FirstResponseHours: r.FirstResponseHours,
		ResolutionHours:    r.ResolutionHours,
		IsActive:           r.IsActive,
	}
}

// CreateSLAConfig 创建 SLA 配置
func (h *Handler) CreateSLAConfig(c *gin.Context) {
	var req SLAConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	config, err := h.SLAService.CreateConfig(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, config)
}

// UpdateSLAConfig 更新 SLA 配置
func (h *Handler) UpdateSLAConfig(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req SLAConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	config, err := h.SLAService.UpdateConfig(uint(id), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, config)
}

// DeleteSLAConfig 删除 SLA 配置
func (h *Handler) DeleteSLAConfig(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.SLAService.DeleteConfig(uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListSLAConfigs 查询 SLA 配置列表
func (h *Handler) ListSLAConfigs(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	activeOnly, _ := strconv.ParseBool(c.Query("active_only"))

	configs, total, err := h.SLAService.ListConfigs(repository.SLAConfigListFilter{
		Page:        page,
		PageSize:    pageSize,
		RequestType: c.Query("request_type"),
		ActiveOnly:  activeOnly,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, configs, shared.BuildPagination(page, pageSize, total))
}

// GetSLAStatistics 查询售后 SLA 统计
func (h *Handler) GetSLAStatistics(c *gin.Context) {
	storeID, _ := strconv.ParseUint(c.Query("store_id"), 10, 64)

	stats, err := h.SLAMonitorService.GetSLAStatistics(repository.ReturnStatsFilter{
		StoreID:     uint(storeID),
		Type:        c.Query("type"),
		CreatedFrom: queryTimePtr(c, "created_from"),
		CreatedTo:   queryTimePtr(c, "created_to"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stats)
}

// SweepSLABreaches 手动触发一次 SLA 超时巡检
func (h *Handler) SweepSLABreaches(c *gin.Context) {
	marked, err := h.SLAMonitorService.ProcessSLABreaches(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"marked": marked})
}
