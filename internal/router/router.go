package router

import (
	"fmt"
	"strings"

	"github.com/vendora-market/internal/cache"
	"github.com/vendora-market/internal/config"
	adminhandlers "github.com/vendora-market/internal/http/handlers/admin"
	publichandlers "github.com/vendora-market/internal/http/handlers/public"
	sellerhandlers "github.com/vendora-market/internal/http/handlers/seller"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按买家/商家/平台分组）
	publicHandler := publichandlers.New(c)
	sellerHandler := sellerhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "vd"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
	}
	returnRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:return_create", redisPrefix),
		WindowSeconds: cfg.Security.ReturnRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ReturnRateLimit.MaxRequests,
	}
	messageRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:return_message", redisPrefix),
		WindowSeconds: cfg.Security.MessageRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.MessageRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.UserLogin)
		}

		// 买家接口（需鉴权）
		user := apiV1.Group("/user")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/sub-orders/:id/return-eligibility", publicHandler.CheckReturnEligibility)
			user.POST("/returns", RateLimitMiddleware(redisClient, returnRule, KeyByUser), publicHandler.CreateReturn)
			user.GET("/returns", publicHandler.ListReturns)
			user.GET("/returns/:id", publicHandler.GetReturn)
			user.POST("/returns/:id/escalate", publicHandler.EscalateReturn)
			user.GET("/returns/:id/messages", publicHandler.ListReturnMessages)
			user.POST("/returns/:id/messages", RateLimitMiddleware(redisClient, messageRule, KeyByUser), publicHandler.AddReturnMessage)
		}

		// 商家接口（需鉴权，店铺归属在 Handler 内校验）
		seller := apiV1.Group("/seller")
		seller.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			seller.GET("/returns", sellerHandler.ListReturns)
			seller.GET("/returns/:id", sellerHandler.GetReturn)
			seller.POST("/returns/:id/approve", sellerHandler.ApproveReturn)
			seller.POST("/returns/:id/reject", sellerHandler.RejectReturn)
			seller.POST("/returns/:id/resolve", sellerHandler.ResolveReturn)
			seller.GET("/returns/:id/messages", sellerHandler.ListReturnMessages)
			seller.POST("/returns/:id/messages", RateLimitMiddleware(redisClient, messageRule, KeyByUser), sellerHandler.AddReturnMessage)
		}

		// 平台管理接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), adminHandler.Login)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 售后工单
				authorized.GET("/returns", adminHandler.ListReturns)
				authorized.GET("/returns/:id", adminHandler.GetReturn)
				authorized.POST("/returns/:id/escalate", adminHandler.EscalateReturn)
				authorized.POST("/returns/:id/decision", adminHandler.RecordDecision)
				authorized.POST("/returns/:id/confirm-completion", adminHandler.ConfirmReturnCompletion)
				authorized.GET("/returns/:id/actions", adminHandler.ListActions)

				// SLA 策略
				authorized.GET("/sla-configs", adminHandler.ListSLAConfigs)
				authorized.POST("/sla-configs", adminHandler.CreateSLAConfig)
				authorized.PUT("/sla-configs/:id", adminHandler.UpdateSLAConfig)
				authorized.DELETE("/sla-configs/:id", adminHandler.DeleteSLAConfig)
				authorized.GET("/sla/statistics", adminHandler.GetSLAStatistics)
				authorized.POST("/sla/sweep", adminHandler.SweepSLABreaches)

				// 退款记录
				authorized.GET("/refunds", adminHandler.ListRefunds)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
