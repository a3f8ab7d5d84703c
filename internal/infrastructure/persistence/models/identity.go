package models

import (
	"github.com/ayustore/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200)"`
	Phone        string `gorm:"type:varchar(30)"`
	PasswordHash string `gorm:"type:varchar(100)"`
	GoogleID     string `gorm:"type:varchar(100);index"`
	Avatar       string `gorm:"type:varchar(500)"`
	Role         string `gorm:"type:varchar(20);not null;default:'USER'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		Name:         m.Name,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		GoogleID:     m.GoogleID,
		Avatar:       m.Avatar,
		Role:         identity.Role(m.Role),
	}
}

// UserModelFromDomain creates a new persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		GoogleID:     u.GoogleID,
		Avatar:       u.Avatar,
		Role:         u.Role.String(),
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
