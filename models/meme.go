package models

import "time"

// Meme 上传后不可修改
type Meme struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"column:user_id;not null;index:idx_meme_user_id" json:"user_id"`
	Caption    string    `gorm:"column:caption;type:text;not null" json:"caption"`
	StorageKey string    `gorm:"column:storage_key;type:varchar(255);not null" json:"storage_key"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Meme) TableName() string { return "memes" }
