package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is a member's role inside its organization.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is an organization user who can log in and read the organization's cases.
type Member struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	PasswordHash   string
	Role           Role
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsLocked reports whether the member is locked out at now.
func (m *Member) IsLocked(now time.Time) bool {
	return m.LockedUntil != nil && now.Before(*m.LockedUntil)
}

// RecordFailedLogin increments the failure counter and locks the member for lockout
// once maxAttempts consecutive failures are reached. It reports whether the member is
// now locked. A maxAttempts of zero disables lockout.
func (m *Member) RecordFailedLogin(now time.Time, maxAttempts int, lockout time.Duration) bool {
	m.FailedAttempts++
	if maxAttempts <= 0 || m.FailedAttempts < maxAttempts {
		return false
	}
	until := now.Add(lockout)
	m.LockedUntil = &until
	m.FailedAttempts = 0
	return true
}

// ResetFailedLogins clears the failure counter and any expired lock.
func (m *Member) ResetFailedLogins() {
	m.FailedAttempts = 0
	m.LockedUntil = nil
}
