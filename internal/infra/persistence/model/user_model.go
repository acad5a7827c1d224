package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The id is a plain auto-incremented
// bigint. The access/refresh token columns hold the last-issued pair only;
// every login and refresh overwrites them wholesale.
type UserModel struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"type:varchar(100);unique;not null"`
	Name           string `gorm:"type:varchar(100)"`
	Email          string `gorm:"type:varchar(255)"`
	ProfileURL     string `gorm:"type:varchar(512)"`
	HashedPassword string `gorm:"type:varchar(255);not null"`
	AccessToken    string `gorm:"type:text"`
	RefreshToken   string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
