package rbac

import (
	"sort"
	"strings"
	"sync"

	"go-presence/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) ([]string, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService seeds enforcer with policy. The enforcer is owned by the service afterwards.
func NewService(enforcer *casbin.Enforcer, policy Policy) (Service, error) {
	enforcer.ClearPolicy()

	for role, perms := range policy.Grants {
		for _, p := range perms {
			if _, err := enforcer.AddPolicy(role, p.Resource, p.Action); err != nil {
				return nil, err
			}
		}
	}
	for role, parents := range policy.Inherits {
		for _, parent := range parents {
			if _, err := enforcer.AddGroupingPolicy(role, parent); err != nil {
				return nil, err
			}
		}
	}

	return &service{enforcer: enforcer, logger: zap.L().Named("rbac")}, nil
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(normalizeRole(req.Role), req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("enforce",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions lists resource:action grants for role, inherited ones included.
func (s *service) Permissions(role string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetImplicitPermissionsForUser(normalizeRole(role))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rules))
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		key := Permission{Resource: rule[1], Action: rule[2]}.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}
