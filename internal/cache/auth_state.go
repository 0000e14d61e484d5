package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vendora-market/internal/models"
)

const authStateTTL = 5 * time.Minute

// AdminAuthState 管理员鉴权快照，认证中间件用它省掉逐请求查库。
type AdminAuthState struct {
	AdminID uint `json:"admin_id"`
	IsSuper bool `json:"is_super"`
}

// UserAuthState 用户鉴权快照
type UserAuthState struct {
	UserID uint   `json:"user_id"`
	Status string `json:"status"`
}

func adminAuthStateKey(adminID uint) string {
	return fmt.Sprintf("auth:admin:%d", adminID)
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// GetAdminAuthState 读取管理员鉴权快照
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(adminID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入管理员鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.AdminID), state, authStateTTL)
}

// BuildAdminAuthState 由管理员实体构造鉴权快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	return &AdminAuthState{AdminID: admin.ID, IsSuper: admin.IsSuper}
}

// GetUserAuthState 读取用户鉴权快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, false, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateTTL)
}

// BuildUserAuthState 由用户实体构造鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{UserID: user.ID, Status: user.Status}
}

// InvalidateAdminAuthState 清除管理员鉴权快照
func InvalidateAdminAuthState(ctx context.Context, adminID uint) error {
	return Del(ctx, adminAuthStateKey(adminID))
}

// InvalidateUserAuthState 清除用户鉴权快照
func InvalidateUserAuthState(ctx context.Context, userID uint) error {
	return Del(ctx, userAuthStateKey(userID))
}
