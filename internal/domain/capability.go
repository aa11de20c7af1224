package domain

import "fmt"

// Capability is something a role may do in the client.
// Views ask for capabilities instead of comparing role strings.
type Capability string

const (
	CapRegisterUsers   Capability = "register_users"
	CapViewAnalytics   Capability = "view_analytics"
	CapApproveTimeOff  Capability = "approve_time_off"
	CapOverrideStatus  Capability = "override_status"
	CapTrackAttendance Capability = "track_attendance"
	CapRequestTimeOff  Capability = "request_time_off"
)

// capabilityRoles is the single role-to-permission table.
var capabilityRoles = map[Capability][]Role{
	CapRegisterUsers:   {RoleHighLevelManager, RoleMiddleLevelManager},
	CapViewAnalytics:   {RoleHighLevelManager, RoleMiddleLevelManager, RoleEmployeeManager},
	CapApproveTimeOff:  {RoleMiddleLevelManager, RoleEmployeeManager},
	CapOverrideStatus:  {RoleHighLevelManager, RoleMiddleLevelManager, RoleEmployeeManager},
	CapTrackAttendance: ExecutionRoles(),
	CapRequestTimeOff:  ExecutionRoles(),
}

// AllCapabilities returns the known capabilities in a stable order
func AllCapabilities() []Capability {
	return []Capability{
		CapRegisterUsers,
		CapViewAnalytics,
		CapApproveTimeOff,
		CapOverrideStatus,
		CapTrackAttendance,
		CapRequestTimeOff,
	}
}

// RolesFor returns the roles granted a capability.
// Unknown capabilities are granted to nobody.
func RolesFor(c Capability) []Role {
	roles := capabilityRoles[c]
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// Grants reports whether role r holds capability c
func (r Role) Grants(c Capability) bool {
	return r.In(capabilityRoles[c]...)
}

// Capabilities lists every capability held by r
func (r Role) Capabilities() []Capability {
	var out []Capability
	for _, c := range AllCapabilities() {
		if r.Grants(c) {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks that the capability is known
func (c Capability) Validate() error {
	if _, ok := capabilityRoles[c]; !ok {
		return fmt.Errorf("unknown capability %q", string(c))
	}
	return nil
}

// String returns the capability identifier
func (c Capability) String() string {
	return string(c)
}
