package seller

import (
	"github.com/vendora-market/internal/http/handlers/shared"
	"github.com/vendora-market/internal/http/response"
	"github.com/vendora-market/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 商家端接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建商家端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

func respondServiceError(c *gin.Context, err error) {
	shared.RespondServiceError(c, err)
}

// requireStore 解析当前登录用户名下的店铺
func (h *Handler) requireStore(c *gin.Context) (uint, bool) {
	userID, ok := shared.GetUserID(c)
	if !ok {
		return 0, false
	}
	store, err := h.StoreRepo.GetByOwnerUserID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return 0, false
	}
	if store == nil {
		respondError(c, response.CodeForbidden, "error.store_not_found", nil)
		return 0, false
	}
	return store.ID, true
}
