package domain

import "time"

// Audit actions recorded by the auth pipeline.
const (
	AuditRegister      = "register"
	AuditLoginSuccess  = "login_success"
	AuditLoginFailure  = "login_failure"
	AuditProfileUpdate = "profile_update"
	AuditUserUpdate    = "user_update"
	AuditUserDeleted   = "user_deleted"
)

// AuditEvent records one security-relevant action against an account.
type AuditEvent struct {
	Email     string
	Action    string
	ActorID   int64 // 0 when the actor is anonymous (failed login, register)
	RequestID string
	At        time.Time
}
