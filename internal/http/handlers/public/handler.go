package public

import "github.com/vendora-market/internal/provider"

// Handler 买家端接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建买家端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
