package service

import (
	"time"

	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/repository"
)

// SLATerms 解析后的 SLA 时限，含命中的配置来源。
type SLATerms struct {
	FirstResponseHours int
	ResolutionHours    int
	Source             *models.SLAConfig
}

// SLADeadlines 按时限推算出的截止时刻
type SLADeadlines struct {
	FirstResponseDueAt time.Time
	ResolutionDueAt    time.Time
}

// CategoryStrategy 多品类工单的时限裁决策略。
// 入参为各品类解析出的时限，返回对整单生效的时限。
type CategoryStrategy func(terms []SLATerms) SLATerms

// StrictestCategoryStrategy 取各品类中最严格的时限，逐项取最小值。
func StrictestCategoryStrategy(terms []SLATerms) SLATerms {
	if len(terms) == 0 {
		return SLATerms{}
	}
	result := terms[0]
	for _, t := range terms[1:] {
		if t.FirstResponseHours < result.FirstResponseHours {
			result.FirstResponseHours = t.FirstResponseHours
			result.Source = t.Source
		}
		if t.ResolutionHours < result.ResolutionHours {
			result.ResolutionHours = t.ResolutionHours
		}
	}
	return result
}

// SLAService 响应时限策略服务
type SLAService struct {
	repo                repository.SLAConfigRepository
	defaultFirstHours   int
	defaultResolveHours int
	categoryStrategy    CategoryStrategy
}

// NewSLAService 创建响应时限策略服务
func NewSLAService(repo repository.SLAConfigRepository, defaultFirstHours, defaultResolveHours int) *SLAService {
	if defaultFirstHours <= 0 {
		defaultFirstHours = constants.DefaultFirstResponseSLAHours
	}
	if defaultResolveHours <= 0 {
		defaultResolveHours = constants.DefaultResolutionSLAHours
	}
	return &SLAService{
		repo:                repo,
		defaultFirstHours:   defaultFirstHours,
		defaultResolveHours: defaultResolveHours,
		categoryStrategy:    StrictestCategoryStrategy,
	}
}

// SetCategoryStrategy 覆盖多品类裁决策略
func (s *SLAService) SetCategoryStrategy(strategy CategoryStrategy) {
	if strategy != nil {
		s.categoryStrategy = strategy
	}
}

// ResolveTermsForCategory 解析单一品类与工单类型命中的时限。
// 匹配优先级：品类加类型、仅品类、仅类型、全局兜底，最后落到内置默认值。
func (s *SLAService) ResolveTermsForCategory(categoryID *uint, requestType string) (SLATerms, error) {
	configs, err := s.repo.ListActiveMatching(categoryID, requestType)
	if err != nil {
		return SLATerms{}, err
	}
	var best *models.SLAConfig
	for i := range configs {
		c := &configs[i]
		if best == nil || c.Specificity() > best.Specificity() {
			best = c
			continue
		}
		// 同优先级取更严格的处理时限
		if c.Specificity() == best.Specificity() && c.ResolutionHours < best.ResolutionHours {
			best = c
		}
	}
	if best == nil {
		return SLATerms{
			FirstResponseHours: s.defaultFirstHours,
			ResolutionHours:    s.defaultResolveHours,
		}, nil
	}
	return SLATerms{
		FirstResponseHours: best.FirstResponseHours,
		ResolutionHours:    best.ResolutionHours,
		Source:             best,
	}, nil
}

// ResolveTerms 解析整单生效的时限。
// 多个品类时依据裁决策略合并，品类缺失视为单一通配品类。
func (s *SLAService) ResolveTerms(categoryIDs []*uint, requestType string) (SLATerms, error) {
	if len(categoryIDs) == 0 {
		categoryIDs = []*uint{nil}
	}
	seen := map[uint]bool{}
	var all []SLATerms
	for _, categoryID := range categoryIDs {
		if categoryID != nil {
			if seen[*categoryID] {
				continue
			}
			seen[*categoryID] = true
		}
		terms, err := s.ResolveTermsForCategory(categoryID, requestType)
		if err != nil {
			return SLATerms{}, err
		}
		all = append(all, terms)
	}
	return s.categoryStrategy(all), nil
}

// CalculateDeadlines 按时限推算截止时刻
func (s *SLAService) CalculateDeadlines(terms SLATerms, from time.Time) SLADeadlines {
	return SLADeadlines{
		FirstResponseDueAt: from.Add(time.Duration(terms.FirstResponseHours) * time.Hour),
		ResolutionDueAt:    from.Add(time.Duration(terms.ResolutionHours) * time.Hour),
	}
}

// SLAConfigInput SLA 配置写入输入
type SLAConfigInput struct {
	CategoryID         *uint
	RequestType        string
	FirstResponseHours int
	ResolutionHours    int
	IsActive           bool
}

func validateSLAConfigInput(input SLAConfigInput) error {
	if input.FirstResponseHours <= 0 || input.ResolutionHours <= 0 {
		return ErrSLAConfigInvalid
	}
	if input.ResolutionHours < input.FirstResponseHours {
		return ErrSLAConfigInvalid
	}
	switch input.RequestType {
	case "", constants.ReturnTypeReturn, constants.ReturnTypeComplaint:
	default:
		return ErrSLAConfigInvalid
	}
	return nil
}

// CreateConfig 创建 SLA 配置
func (s *SLAService) CreateConfig(input SLAConfigInput) (*models.SLAConfig, error) {
	if err := validateSLAConfigInput(input); err != nil {
		return nil, err
	}
	config := &models.SLAConfig{
		CategoryID:         input.CategoryID,
		RequestType:        input.RequestType,
		FirstResponseHours: input.FirstResponseHours,
		ResolutionHours:    input.ResolutionHours,
		IsActive:           input.IsActive,
	}
	if err := s.repo.Create(config); err != nil {
		return nil, err
	}
	return config, nil
}

// UpdateConfig 更新 SLA 配置
func (s *SLAService) UpdateConfig(id uint, input SLAConfigInput) (*models.SLAConfig, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrSLAConfigNotFound
	}
	if err := validateSLAConfigInput(input); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"category_id":          input.CategoryID,
		"request_type":         input.RequestType,
		"first_response_hours": input.FirstResponseHours,
		"resolution_hours":     input.ResolutionHours,
		"is_active":            input.IsActive,
	}
	if err := s.repo.Updates(id, updates); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// DeleteConfig 删除 SLA 配置
func (s *SLAService) DeleteConfig(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSLAConfigNotFound
	}
	return s.repo.Delete(id)
}

// ListConfigs 分页查询 SLA 配置
func (s *SLAService) ListConfigs(filter repository.SLAConfigListFilter) ([]models.SLAConfig, int64, error) {
	return s.repo.List(filter)
}
