package models

import (
	"github.com/google/uuid"
)

// Caller is the identity an automation rule invocation is made with. It is a
// closed union: either the trusted internal trigger (pre-shared secret, used
// by the scheduler) or an interactive principal that must pass the
// tenant-admin check on the rule's tenant.
type Caller interface {
	callerIdentity()
}

// TrustedCaller presents the pre-shared trigger secret. It bypasses the
// tenant-admin check entirely.
type TrustedCaller struct{}

// AuthenticatedCaller presents a bearer credential resolving to a user.
type AuthenticatedCaller struct {
	UserId uuid.UUID
}

func (TrustedCaller) callerIdentity()       {}
func (AuthenticatedCaller) callerIdentity() {}
