package identity

import (
	"time"

	"github.com/google/uuid"
)

// AccessAction is what an access log entry records
type AccessAction string

const (
	AccessLogin       AccessAction = "login"
	AccessLoginFailed AccessAction = "login_failed"
	AccessLogout      AccessAction = "logout"
)

// AccessLog is one authentication event
type AccessLog struct {
	ID         uuid.UUID
	UserID     *uuid.UUID
	Action     AccessAction
	IP         string
	Details    string
	OccurredAt time.Time
}

// NewAccessLog stamps a new access event
func NewAccessLog(userID *uuid.UUID, action AccessAction, ip, details string) *AccessLog {
	return &AccessLog{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		IP:         ip,
		Details:    details,
		OccurredAt: time.Now(),
	}
}
