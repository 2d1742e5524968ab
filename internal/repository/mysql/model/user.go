package model

import (
	"time"

	"github.com/triplog/triplog-backend/domain"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(45);not null"`
	Username  string    `gorm:"type:varchar(45);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(100);not null"`
	Role      string    `gorm:"type:varchar(10);default:user"`
	UpdatedAt time.Time `gorm:"type:datetime"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "user"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Username:  m.Username,
		Password:  m.Password,
		Role:      domain.Role(m.Role),
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Password:  u.Password,
		Role:      string(u.Role),
		UpdatedAt: u.UpdatedAt,
		CreatedAt: u.CreatedAt,
	}
}
