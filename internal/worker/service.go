package worker

import (
	"context"
	"errors"
	"time"

	"github.com/vendora-market/internal/config"
	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	sweepMinutes := cfg.Returns.BreachSweepIntervalMinutes
	if sweepMinutes <= 0 {
		sweepMinutes = constants.DefaultBreachSweepIntervalMin
	}
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: time.Duration(sweepMinutes) * time.Minute,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.SLAMonitorService != nil {
		go s.runBreachSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runBreachSweepLoop 周期巡检开放售后工单的 SLA 超期
func (s *Service) runBreachSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.SLAMonitorService == nil {
		return
	}
	runOnce := func() {
		marked, err := s.consumer.SLAMonitorService.ProcessSLABreaches(time.Now())
		if err != nil {
			logger.Warnw("worker_sla_breach_sweep_failed", "error", err)
			return
		}
		if marked > 0 {
			logger.Infow("worker_sla_breach_sweep_done", "marked", marked)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
