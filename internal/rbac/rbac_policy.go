package rbac

import "go-presence/internal/domain"

// Permission is a resource/action pair granted to a role.
type Permission struct {
	Resource string
	Action   string
}

func (p Permission) String() string {
	return p.Resource + ":" + p.Action
}

// Policy is the static role catalogue. Inherits lists the roles whose
// permissions a role receives in addition to its own.
type Policy struct {
	Grants   map[string][]Permission
	Inherits map[string][]string
}

// DefaultPolicy: employees clock and see their own attendance. Managers add
// company-wide reads and exports. Admins get the rest.
func DefaultPolicy() Policy {
	return Policy{
		Grants: map[string][]Permission{
			domain.RoleEmployee: {
				{Resource: "attendance", Action: "read"},
				{Resource: "attendance", Action: "clock"},
				{Resource: "office", Action: "read"},
			},
			domain.RoleManager: {
				{Resource: "attendance", Action: "export"},
			},
			domain.RoleAdmin: {
				{Resource: "face", Action: "read"},
				{Resource: "face", Action: "delete"},
				{Resource: "audit", Action: "read"},
				{Resource: "audit", Action: "export"},
				{Resource: "user", Action: "create"},
			},
		},
		Inherits: map[string][]string{
			domain.RoleManager: {domain.RoleEmployee},
			domain.RoleAdmin:   {domain.RoleManager},
		},
	}
}
