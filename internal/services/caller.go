package services

import "github.com/yukikurage/taskhub-api/internal/models"

// Caller is the authenticated identity a service acts for.
type Caller struct {
	UserID uint64
	Role   models.Role
}

// IsAdmin reports whether the caller bypasses ownership checks.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// CanAccess reports whether the caller may see a row owned by ownerID.
func (c Caller) CanAccess(ownerID uint64) bool {
	return c.IsAdmin() || c.UserID == ownerID
}

// ownerScope returns the owner filter for list queries: nil for admins,
// the caller's own ID otherwise.
func (c Caller) ownerScope() *uint64 {
	if c.IsAdmin() {
		return nil
	}
	id := c.UserID
	return &id
}
