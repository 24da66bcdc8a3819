// Package authz holds the area-to-role route policy. Adding a role or a new
// area is a one-place change here; guards only ask Allowed.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// rbacModel matches roles exactly and paths with keyMatch2, the same model
// shape used for route policies elsewhere in the platform.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// PolicyService implements domain.RoutePolicy with an in-memory Casbin
// enforcer. The gateway's policy table is small and static, so no adapter is
// attached.
type PolicyService struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService builds the enforcer and seeds the area table.
func NewPolicyService() (*PolicyService, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	seed := [][]string{
		{"role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_admin", "/admin", "GET"},
		{"role_seller", "/seller/*", "(GET|POST|PUT|DELETE)"},
		{"role_seller", "/seller", "GET"},
		{"role_customer", "/customer/*", "(GET|POST|PUT|DELETE)"},
		{"role_customer", "/customer", "GET"},
	}
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSeller, domain.RoleCustomer} {
		seed = append(seed,
			[]string{"role_" + string(role), "/account/*", "(GET|POST)"},
			[]string{"role_" + string(role), "/logout", "POST"},
		)
	}
	for _, p := range seed {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}

	return &PolicyService{enforcer: e}, nil
}

// Allowed implements domain.RoutePolicy.
func (s *PolicyService) Allowed(role domain.Role, path, method string) (bool, error) {
	return s.enforcer.Enforce("role_"+string(role), path, method)
}

// Policies returns the current policy table, mainly for diagnostics.
func (s *PolicyService) Policies() ([][]string, error) {
	return s.enforcer.GetPolicy()
}
