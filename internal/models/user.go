package models

import "time"

// User mirrors the users table.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// AuditRecord mirrors the audit_log table.
type AuditRecord struct {
	ID        int64
	UserID    *int64
	Action    string
	TableName *string
	RecordID  *int64
	OldValues *string
	NewValues *string
	IPAddress *string
	CreatedAt time.Time
}
