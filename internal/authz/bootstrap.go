package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// readonly_auditor 只读巡检，dispute_admin 可裁决售后纠纷，
// sla_manager 维护 SLA 策略并查看统计。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     "dispute_admin",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/returns", Action: "GET"},
				{Object: "/admin/returns/:id", Action: "GET"},
				{Object: "/admin/returns/:id/escalate", Action: "POST"},
				{Object: "/admin/returns/:id/decision", Action: "POST"},
				{Object: "/admin/returns/:id/confirm-completion", Action: "POST"},
				{Object: "/admin/returns/:id/actions", Action: "*"},
				{Object: "/admin/refunds", Action: "GET"},
			},
		},
		{
			Role:     "sla_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/sla-configs", Action: "*"},
				{Object: "/admin/sla-configs/:id", Action: "*"},
				{Object: "/admin/sla/statistics", Action: "GET"},
				{Object: "/admin/sla/sweep", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
