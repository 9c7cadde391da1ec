// Package auth holds the closed role set and the capability check shared by
// every handler.
package auth

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

var ErrInvalidRole = errors.New("invalid user type")

// ParseRole accepts any casing ("Tutor", "tutor", "TUTOR").
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return r, nil
	}
	return "", ErrInvalidRole
}

// SelfRegistrable reports whether a role can be chosen at signup.
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleTutor
}

// Home is where a freshly logged-in user lands.
func (r Role) Home() string {
	switch r {
	case RoleTutor:
		return "/tutor_dashboard"
	case RoleAdmin:
		return "/admin"
	default:
		return "/student"
	}
}

type Capability string

const (
	CapBrowseLeads    Capability = "leads:browse"
	CapAcceptLead     Capability = "leads:accept"
	CapRecordTuition  Capability = "tuition:record"
	CapViewIncome     Capability = "tuition:income"
	CapVerifyLead     Capability = "leads:verify"
	CapApproveMatch   Capability = "matches:approve"
	CapViewAdminPanel Capability = "admin:view"
	CapViewOwnAccount Capability = "account:view"
)

var capabilities = map[Role]map[Capability]bool{
	RoleStudent: {
		CapViewOwnAccount: true,
	},
	RoleTutor: {
		CapViewOwnAccount: true,
		CapBrowseLeads:    true,
		CapAcceptLead:     true,
		CapRecordTuition:  true,
		CapViewIncome:     true,
	},
	RoleAdmin: {
		CapViewOwnAccount: true,
		CapBrowseLeads:    true,
		CapVerifyLead:     true,
		CapApproveMatch:   true,
		CapViewAdminPanel: true,
	},
}

// Can reports whether role holds capability.
func Can(role Role, capability Capability) bool {
	return capabilities[role][capability]
}
