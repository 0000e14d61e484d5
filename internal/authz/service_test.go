package authz

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var authzTestDBSeq int64

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:authz_test_%d?mode=memory&cache=shared", atomic.AddInt64(&authzTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	service, err := NewService(db)
	if err != nil {
		t.Fatalf("create authz service failed: %v", err)
	}
	return service
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: "/"},
		{in: "admin/returns", want: "/admin/returns"},
		{in: "/admin/returns", want: "/admin/returns"},
		{in: "/api/v1/admin/returns", want: "/admin/returns"},
		{in: "/api/v1", want: "/"},
		{in: "  /admin/sla/sweep  ", want: "/admin/sla/sweep"},
	}
	for _, tc := range cases {
		if got := NormalizeObject(tc.in); got != tc.want {
			t.Fatalf("NormalizeObject(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	role, err := NormalizeRole("dispute admin")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if role != "role:dispute_admin" {
		t.Fatalf("want role:dispute_admin got %s", role)
	}

	role, err = NormalizeRole("role:sla_manager")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if role != "role:sla_manager" {
		t.Fatalf("prefixed role must pass through, got %s", role)
	}

	if _, err := NormalizeRole("   "); err == nil {
		t.Fatalf("blank role must be rejected")
	}
	if _, err := NormalizeRole("role:"); err == nil {
		t.Fatalf("bare prefix must be rejected")
	}
}

func TestEnforceAdminWithGrantedRole(t *testing.T) {
	service := newTestService(t)

	if err := service.GrantRolePolicy("dispute_admin", "/admin/returns/:id/decision", "POST"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := service.SetAdminRoles(3, []string{"dispute_admin"}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	ok, err := service.EnforceAdmin(3, "/api/v1/admin/returns/15/decision", "post")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatalf("granted admin should pass")
	}

	ok, err = service.EnforceAdmin(3, "/api/v1/admin/sla-configs", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if ok {
		t.Fatalf("ungranted object must be denied")
	}

	ok, err = service.EnforceAdmin(4, "/api/v1/admin/returns/15/decision", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if ok {
		t.Fatalf("admin without role must be denied")
	}
}

func TestWildcardActionPolicy(t *testing.T) {
	service := newTestService(t)

	if err := service.GrantRolePolicy("sla_manager", "/admin/sla-configs/:id", "*"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := service.SetAdminRoles(5, []string{"sla_manager"}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	for _, action := range []string{"GET", "PUT", "DELETE"} {
		ok, err := service.EnforceAdmin(5, "/admin/sla-configs/7", action)
		if err != nil {
			t.Fatalf("enforce %s failed: %v", action, err)
		}
		if !ok {
			t.Fatalf("wildcard action must allow %s", action)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	service := newTestService(t)
	if err := service.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	roles, err := service.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{
		"role:readonly_auditor": false,
		"role:dispute_admin":    false,
		"role:sla_manager":      false,
	}
	for _, role := range roles {
		if _, exists := want[role]; exists {
			want[role] = true
		}
	}
	for role, seen := range want {
		if !seen {
			t.Fatalf("builtin role %s missing from %v", role, roles)
		}
	}

	// dispute_admin 继承只读角色的查看权限
	if err := service.SetAdminRoles(2, []string{"dispute_admin"}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	ok, err := service.EnforceAdmin(2, "/admin/sla/statistics", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatalf("inherited read access expected")
	}
	ok, err = service.EnforceAdmin(2, "/admin/returns/15/confirm-completion", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatalf("dispute_admin should confirm completion")
	}
	ok, err = service.EnforceAdmin(2, "/admin/sla/sweep", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if ok {
		t.Fatalf("dispute_admin must not trigger sla sweep")
	}

	// 幂等：重复初始化不报错
	if err := service.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
}

func TestSetAdminRolesReplaces(t *testing.T) {
	service := newTestService(t)
	if err := service.GrantRolePolicy("dispute_admin", "/admin/returns", "GET"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := service.GrantRolePolicy("sla_manager", "/admin/sla-configs", "GET"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	if err := service.SetAdminRoles(8, []string{"dispute_admin"}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := service.SetAdminRoles(8, []string{"sla_manager"}); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	ok, err := service.EnforceAdmin(8, "/admin/returns", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if ok {
		t.Fatalf("replaced role must lose old permissions")
	}
	ok, err = service.EnforceAdmin(8, "/admin/sla-configs", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatalf("new role permissions expected")
	}
}
