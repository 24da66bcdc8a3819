package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

func TestPolicyService_Allowed(t *testing.T) {
	policy, err := NewPolicyService()
	require.NoError(t, err)

	tests := []struct {
		name   string
		role   domain.Role
		path   string
		method string
		want   bool
	}{
		{"admin enters admin home", domain.RoleAdmin, "/admin", "GET", true},
		{"admin enters nested admin pages", domain.RoleAdmin, "/admin/users", "GET", true},
		{"admin may post in admin area", domain.RoleAdmin, "/admin/users", "POST", true},
		{"seller blocked from admin area", domain.RoleSeller, "/admin", "GET", false},
		{"customer blocked from admin area", domain.RoleCustomer, "/admin/users", "GET", false},
		{"seller enters seller area", domain.RoleSeller, "/seller", "GET", true},
		{"customer blocked from seller area", domain.RoleCustomer, "/seller/products", "GET", false},
		{"customer enters customer area", domain.RoleCustomer, "/customer", "GET", true},
		{"admin blocked from customer area", domain.RoleAdmin, "/customer", "GET", false},
		{"every role reaches account pages", domain.RoleSeller, "/account/me", "GET", true},
		{"every role may log out", domain.RoleCustomer, "/logout", "POST", true},
		{"unknown role has no grants", domain.Role("moderator"), "/customer", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Allowed(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyService_Policies(t *testing.T) {
	policy, err := NewPolicyService()
	require.NoError(t, err)

	policies, err := policy.Policies()
	require.NoError(t, err)
	assert.NotEmpty(t, policies)
}
