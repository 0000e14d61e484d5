package service

import (
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"
)

// SLABreachResult 单个工单的超期巡检结果
type SLABreachResult struct {
	FirstResponseBreached bool
	ResolutionBreached    bool
	Escalated             bool
}

// SLAStatistics 售后 SLA 统计结果
type SLAStatistics struct {
	TotalCases              int64            `json:"total_cases"`
	StatusCounts            map[string]int64 `json:"status_counts"`
	FirstResponseBreaches   int64            `json:"first_response_breaches"`
	ResolutionBreaches      int64            `json:"resolution_breaches"`
	FirstResponseBreachRate float64          `json:"first_response_breach_rate"`
	ResolutionBreachRate    float64          `json:"resolution_breach_rate"`
	ResolvedWithinSLA       int64            `json:"resolved_within_sla"`
	AvgFirstResponseHours   float64          `json:"avg_first_response_hours"`
	AvgResolutionHours      float64          `json:"avg_resolution_hours"`
	FirstResponseSamples    int64            `json:"first_response_samples"`
	ResolutionSamples       int64            `json:"resolution_samples"`
}

// SLAMonitorService 超期巡检服务
type SLAMonitorService struct {
	returnRepo    repository.ReturnRequestRepository
	returnService *ReturnService
	autoEscalate  bool
}

// NewSLAMonitorService 创建超期巡检服务
func NewSLAMonitorService(returnRepo repository.ReturnRequestRepository, returnService *ReturnService, autoEscalate bool) *SLAMonitorService {
	return &SLAMonitorService{
		returnRepo:    returnRepo,
		returnService: returnService,
		autoEscalate:  autoEscalate,
	}
}

// CheckAndUpdateSLABreaches 巡检单个工单并落标超期。
// 标记幂等，已置位的标记不会重复写库。
func (s *SLAMonitorService) CheckAndUpdateSLABreaches(request *models.ReturnRequest, now time.Time) (*SLABreachResult, error) {
	result := &SLABreachResult{}
	if request == nil || request.IsTerminal() {
		return result, nil
	}

	// 截止时刻当下不算超期，严格晚于截止才落标
	updates := map[string]interface{}{}
	if !request.FirstResponseSLABreached &&
		request.SellerFirstResponseAt == nil &&
		request.FirstResponseDueAt != nil &&
		now.After(*request.FirstResponseDueAt) {
		updates["first_response_sla_breached"] = true
		result.FirstResponseBreached = true
	}
	if !request.ResolutionSLABreached &&
		request.Status != constants.ReturnStatusResolved &&
		request.ResolutionDueAt != nil &&
		now.After(*request.ResolutionDueAt) {
		updates["resolution_sla_breached"] = true
		result.ResolutionBreached = true
	}
	if len(updates) == 0 {
		return result, nil
	}
	if err := s.returnRepo.Updates(request.ID, updates); err != nil {
		return nil, err
	}

	// 处理完结超期可自动升级仲裁
	if result.ResolutionBreached && s.autoEscalate &&
		(request.Status == constants.ReturnStatusRequested || request.Status == constants.ReturnStatusApproved) {
		if _, err := s.returnService.Escalate(request.ID, nil, constants.EscalationReasonSLABreach, "处理时限超期，系统自动升级仲裁", now); err != nil {
			logger.Warnw("超期自动升级失败", "return_no", request.ReturnNo, "error", err)
		} else {
			result.Escalated = true
		}
	}
	return result, nil
}

// ProcessSLABreaches 全量巡检开放工单，返回本轮标记的超期数量。
func (s *SLAMonitorService) ProcessSLABreaches(now time.Time) (int, error) {
	requests, err := s.returnRepo.ListOpenWithDeadlines(now)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range requests {
		result, err := s.CheckAndUpdateSLABreaches(&requests[i], now)
		if err != nil {
			logger.Errorw("超期巡检失败", "return_no", requests[i].ReturnNo, "error", err)
			continue
		}
		if result.FirstResponseBreached || result.ResolutionBreached {
			marked++
		}
	}
	return marked, nil
}

// GetSLAStatistics 汇总 SLA 统计。
// 计数走 SQL 聚合，均值在应用层按时间戳样本计算。
func (s *SLAMonitorService) GetSLAStatistics(filter repository.ReturnStatsFilter) (*SLAStatistics, error) {
	statusCounts, err := s.returnRepo.CountByStatus(filter)
	if err != nil {
		return nil, err
	}
	stats := &SLAStatistics{StatusCounts: make(map[string]int64, len(statusCounts))}
	for _, row := range statusCounts {
		stats.StatusCounts[row.Status] = row.Count
		stats.TotalCases += row.Count
	}

	stats.FirstResponseBreaches, stats.ResolutionBreaches, err = s.returnRepo.CountBreaches(filter)
	if err != nil {
		return nil, err
	}
	if stats.TotalCases > 0 {
		stats.FirstResponseBreachRate = float64(stats.FirstResponseBreaches) / float64(stats.TotalCases)
		stats.ResolutionBreachRate = float64(stats.ResolutionBreaches) / float64(stats.TotalCases)
	}

	samples, err := s.returnRepo.ListTimingSamples(filter)
	if err != nil {
		return nil, err
	}
	var firstTotal, resolveTotal float64
	for _, sample := range samples {
		if sample.SellerFirstResponseAt != nil {
			firstTotal += sample.SellerFirstResponseAt.Sub(sample.CreatedAt).Hours()
			stats.FirstResponseSamples++
		}
		// 裁定时间缺失时退回完结时间作为处理完成时刻
		finishedAt := sample.ResolvedAt
		if finishedAt == nil {
			finishedAt = sample.CompletedAt
		}
		if finishedAt == nil {
			continue
		}
		resolveTotal += finishedAt.Sub(sample.CreatedAt).Hours()
		stats.ResolutionSamples++
		if sample.ResolutionDueAt != nil && !finishedAt.After(*sample.ResolutionDueAt) {
			stats.ResolvedWithinSLA++
		}
	}
	if stats.FirstResponseSamples > 0 {
		stats.AvgFirstResponseHours = firstTotal / float64(stats.FirstResponseSamples)
	}
	if stats.ResolutionSamples > 0 {
		stats.AvgResolutionHours = resolveTotal / float64(stats.ResolutionSamples)
	}
	return stats, nil
}
