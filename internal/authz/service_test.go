package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestGrantThenHasPermission(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Grant(1, "content:post:write"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	allow, err := svc.HasPermission(1, "content:post:write")
	if err != nil {
		t.Fatalf("has permission failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.HasPermission(1, "content:project:write")
	if err != nil {
		t.Fatalf("has permission failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false for ungranted permission")
	}

	allow, err = svc.HasPermission(2, "content:post:write")
	if err != nil {
		t.Fatalf("has permission failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false for other admin")
	}
}

func TestGrantIsIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Grant(1, "content:post:write"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := svc.Grant(1, "content:post:write"); err != nil {
		t.Fatalf("repeat grant failed: %v", err)
	}

	perms, err := svc.ListGrants(1)
	if err != nil {
		t.Fatalf("list grants failed: %v", err)
	}
	if len(perms) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(perms))
	}
}

func TestRevokeRemovesGrant(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Grant(1, "site:setting:write"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := svc.Revoke(1, "site:setting:write"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	allow, err := svc.HasPermission(1, "site:setting:write")
	if err != nil {
		t.Fatalf("has permission failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false after revoke")
	}
}

func TestRevokeAllClearsAdmin(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	for _, perm := range []string{"content:post:write", "content:project:write", "site:upload:write"} {
		if err := svc.Grant(3, perm); err != nil {
			t.Fatalf("grant %s failed: %v", perm, err)
		}
	}
	if err := svc.Grant(4, "content:post:write"); err != nil {
		t.Fatalf("grant other admin failed: %v", err)
	}

	if err := svc.RevokeAll(3); err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}

	perms, err := svc.ListGrants(3)
	if err != nil {
		t.Fatalf("list grants failed: %v", err)
	}
	if len(perms) != 0 {
		t.Fatalf("expected no grants, got %v", perms)
	}

	allow, err := svc.HasPermission(4, "content:post:write")
	if err != nil {
		t.Fatalf("has permission failed: %v", err)
	}
	if !allow {
		t.Fatalf("other admin grants should survive")
	}
}

func TestNormalizePermission(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trims and lowers", input: "  Content:Post:Write ", want: "content:post:write"},
		{name: "empty rejected", input: "   ", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePermission(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected result: got=%s want=%s", got, tc.want)
			}
		})
	}
}
