// Package authz holds the role capability policy. Every route declares one
// action string such as "task/read"; a role may perform an action when one
// of its patterns matches it.
package authz

import (
	"strings"

	"github.com/yukikurage/taskhub-api/internal/models"
)

// Actions declared by routes.
const (
	ActionUserList   = "user/list"
	ActionUserRead   = "user/read"
	ActionUserCreate = "user/create"
	ActionUserUpdate = "user/update"
	ActionUserDelete = "user/delete"
	ActionUserRole   = "user/role"

	ActionAuthRegister = "auth/register"

	ActionTaskRead  = "task/read"
	ActionTaskWrite = "task/write"
	ActionTaskDraft = "task/draft"

	ActionProjectRead  = "project/read"
	ActionProjectWrite = "project/write"

	ActionTicketRead  = "ticket/read"
	ActionTicketWrite = "ticket/write"

	ActionLogworkRead  = "logwork/read"
	ActionLogworkWrite = "logwork/write"
)

// Policy maps a role to the action patterns it is granted.
//
// A pattern is a slash separated path where "*" matches exactly one segment
// and "**" matches any number of trailing segments.
type Policy map[models.Role][]string

// DefaultPolicy grants admins everything and users the read side of tasks
// and projects plus their own logwork.
func DefaultPolicy() Policy {
	return Policy{
		models.RoleAdmin: {"**"},
		models.RoleUser: {
			ActionTaskRead,
			ActionProjectRead,
			"logwork/*",
		},
	}
}

// Allows reports whether role may perform action.
func (p Policy) Allows(role models.Role, action string) bool {
	for _, pattern := range p[role] {
		if Match(pattern, action) {
			return true
		}
	}
	return false
}

// Match reports whether action matches pattern.
func Match(pattern, action string) bool {
	if action == "" {
		return false
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(action, "/"))
}

func matchSegments(pattern, action []string) bool {
	for i, seg := range pattern {
		if seg == "**" {
			return i == len(pattern)-1 || matchTail(pattern[i+1:], action[i:])
		}
		if i >= len(action) {
			return false
		}
		if seg != "*" && seg != action[i] {
			return false
		}
	}
	return len(pattern) == len(action)
}

// matchTail tries every split point for a "**" in the middle of a pattern.
func matchTail(pattern, action []string) bool {
	for start := 0; start <= len(action); start++ {
		if matchSegments(pattern, action[start:]) {
			return true
		}
	}
	return false
}
