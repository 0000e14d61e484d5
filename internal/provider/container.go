package provider

import (
	"github.com/vendora-market/internal/authz"
	"github.com/vendora-market/internal/cache"
	"github.com/vendora-market/internal/config"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"
	"github.com/vendora-market/internal/queue"
	"github.com/vendora-market/internal/repository"
	"github.com/vendora-market/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	StoreRepo     repository.StoreRepository
	SubOrderRepo  repository.SubOrderRepository
	ReturnRepo    repository.ReturnRequestRepository
	MessageRepo   repository.ReturnMessageRepository
	ActionRepo    repository.AdminActionRepository
	SLAConfigRepo repository.SLAConfigRepository
	RefundRepo    repository.RefundRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	EligibilityService *service.EligibilityService
	SLAService         *service.SLAService
	SLAMonitorService  *service.SLAMonitorService
	ReturnService      *service.ReturnService
	MessageService     *service.ReturnMessageService
	RefundService      *service.RefundService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.SubOrderRepo = repository.NewSubOrderRepository(db)
	c.ReturnRepo = repository.NewReturnRequestRepository(db)
	c.MessageRepo = repository.NewReturnMessageRepository(db)
	c.ActionRepo = repository.NewAdminActionRepository(db)
	c.SLAConfigRepo = repository.NewSLAConfigRepository(db)
	c.RefundRepo = repository.NewRefundRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
	} else {
		if err := authzService.BootstrapBuiltinRoles(); err != nil {
			logger.Warnw("provider_bootstrap_roles_failed", "error", err)
		}
		c.AuthzService = authzService
	}

	c.AuthService = service.NewAuthService(cfg, c.AdminRepo, c.UserRepo)
	c.EligibilityService = service.NewEligibilityService(c.SubOrderRepo, c.ReturnRepo, cfg.Returns.WindowDays)
	c.SLAService = service.NewSLAService(c.SLAConfigRepo, cfg.Returns.DefaultFirstResponseHours, cfg.Returns.DefaultResolutionHours)
	c.RefundService = service.NewRefundService(c.RefundRepo)
	c.ReturnService = service.NewReturnService(
		c.ReturnRepo,
		c.SubOrderRepo,
		c.ActionRepo,
		c.EligibilityService,
		c.SLAService,
		c.RefundService,
		queue.NewNotifier(c.QueueClient),
	)
	c.SLAMonitorService = service.NewSLAMonitorService(c.ReturnRepo, c.ReturnService, cfg.Returns.AutoEscalateOnResolutionBreach)
	c.MessageService = service.NewReturnMessageService(c.MessageRepo, c.ReturnRepo)
}
