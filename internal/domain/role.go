package domain

import (
	"fmt"
	"strings"
)

// Role is a staff member's system role.
// This is a value object over the closed set of roles the backend issues.
type Role string

// Manager roles
const (
	RoleHighLevelManager   Role = "High-Level Manager"
	RoleMiddleLevelManager Role = "Middle-Level Manager"
	RoleEmployeeManager    Role = "Employee Manager"
)

// Execution roles
const (
	RoleSalesRep          Role = "Sales Rep"
	RoleFrontDesk         Role = "Front Desk"
	RoleStorePersonnel    Role = "Store Personnel"
	RoleLabPersonnel      Role = "Lab Personnel"
	RoleDeliveryPersonnel Role = "Delivery Personnel"
)

// Partition groups roles into managers and execution staff.
type Partition int

const (
	// PartitionNone is the zero value, returned for unknown roles
	PartitionNone Partition = iota
	// PartitionManager covers the three management tiers
	PartitionManager
	// PartitionExecution covers the floor roles
	PartitionExecution
)

// String returns the partition name
func (p Partition) String() string {
	switch p {
	case PartitionManager:
		return "manager"
	case PartitionExecution:
		return "execution"
	default:
		return "none"
	}
}

var allRoles = []Role{
	RoleHighLevelManager,
	RoleMiddleLevelManager,
	RoleEmployeeManager,
	RoleSalesRep,
	RoleFrontDesk,
	RoleStorePersonnel,
	RoleLabPersonnel,
	RoleDeliveryPersonnel,
}

// AllRoles returns every role in display order, managers first.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ManagerRoles returns the manager partition.
func ManagerRoles() []Role {
	return rolesIn(PartitionManager)
}

// ExecutionRoles returns the execution partition.
func ExecutionRoles() []Role {
	return rolesIn(PartitionExecution)
}

func rolesIn(p Partition) []Role {
	var out []Role
	for _, r := range allRoles {
		if r.Partition() == p {
			out = append(out, r)
		}
	}
	return out
}

// ParseRole creates a Role from its wire value with validation.
// Surrounding whitespace is ignored; case is not.
func ParseRole(value string) (Role, error) {
	r := Role(strings.TrimSpace(value))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks that the role is one of the known roles
func (r Role) Validate() error {
	if r.Partition() == PartitionNone {
		return fmt.Errorf("invalid role %q: not a recognized system role", string(r))
	}
	return nil
}

// Partition reports which half of the role set r belongs to
func (r Role) Partition() Partition {
	switch r {
	case RoleHighLevelManager, RoleMiddleLevelManager, RoleEmployeeManager:
		return PartitionManager
	case RoleSalesRep, RoleFrontDesk, RoleStorePersonnel, RoleLabPersonnel, RoleDeliveryPersonnel:
		return PartitionExecution
	default:
		return PartitionNone
	}
}

// IsManager reports whether r is in the manager partition
func (r Role) IsManager() bool {
	return r.Partition() == PartitionManager
}

// IsExecution reports whether r is in the execution partition
func (r Role) IsExecution() bool {
	return r.Partition() == PartitionExecution
}

// In reports whether r is a member of roles
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}

// String returns the wire value
func (r Role) String() string {
	return string(r)
}
