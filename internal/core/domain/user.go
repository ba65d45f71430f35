package domain

import "time"

// Role is a staff access level. Roles live on the user record and JWT claims;
// core ledger paths do not branch on them.
type Role string

const (
	RoleClerk   Role = "clerk"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User is a staff account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuditRecord is one immutable row of the audit trail. Ledger mutations write
// one inside the same database transaction as the change itself.
type AuditRecord struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userID,omitempty"`
	Action    string    `json:"action"`
	TableName string    `json:"tableName,omitempty"`
	RecordID  int64     `json:"recordID,omitempty"`
	OldValues string    `json:"oldValues,omitempty"`
	NewValues string    `json:"newValues,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
