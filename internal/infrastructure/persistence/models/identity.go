package models

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username     string        `gorm:"type:varchar(80);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'user'"`
	FirstName    string        `gorm:"type:varchar(100)"`
	LastName     string        `gorm:"type:varchar(100)"`
	Email        string        `gorm:"type:varchar(120);index"`
	Phone        string        `gorm:"type:varchar(20)"`
	Active       bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Email = u.Email
	m.Phone = u.Phone
	m.Active = u.Active
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// AccessLogModel stores login and logout events
type AccessLogModel struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	UserID     *uuid.UUID            `gorm:"type:uuid;index"`
	Action     identity.AccessAction `gorm:"type:varchar(20);not null"`
	IP         string                `gorm:"type:varchar(45)"`
	Details    string                `gorm:"type:text"`
	OccurredAt time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AccessLogModel) TableName() string {
	return "access_logs"
}

func (m *AccessLogModel) ToDomain() identity.AccessLog {
	return identity.AccessLog{
		ID:         m.ID,
		UserID:     m.UserID,
		Action:     m.Action,
		IP:         m.IP,
		Details:    m.Details,
		OccurredAt: m.OccurredAt,
	}
}

func AccessLogModelFromDomain(e *identity.AccessLog) *AccessLogModel {
	return &AccessLogModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Action:     e.Action,
		IP:         e.IP,
		Details:    e.Details,
		OccurredAt: e.OccurredAt,
	}
}
