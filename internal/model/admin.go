package model

import (
	"time"
)

type Admin struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Username  string     `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Email     string     `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Password  string     `json:"-" gorm:"size:255;not null"` // bcrypt hash
	Role      string     `json:"role" gorm:"size:50;default:'admin'"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
