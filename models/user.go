package models

import "time"

type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  int64     `gorm:"column:username;not null;uniqueIndex:uk_username" json:"username"`
	Tg        string    `gorm:"column:tg;type:varchar(64);not null;default:''" json:"tg"`
	CodeHash  string    `gorm:"column:code_hash;type:varchar(128);not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
