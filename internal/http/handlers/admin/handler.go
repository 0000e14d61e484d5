package admin

import (
	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 平台管理接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

func respondServiceError(c *gin.Context, err error) {
	shared.RespondServiceError(c, err)
}

func getAdminID(c *gin.Context) (uint, bool) {
	return shared.GetAdminID(c)
}
