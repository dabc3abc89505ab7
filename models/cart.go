package models

import "time"

type CartType string

const (
	CartGeneral  CartType = "general"
	CartPersonal CartType = "personal"
)

func (c CartType) Valid() bool {
	return c == CartGeneral || c == CartPersonal
}

// CartEntry 对应 meme_carts
// 唯一键: user_id + meme_id + cart_type
type CartEntry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_user_meme_cart,priority:1" json:"user_id"`
	MemeID    int64     `gorm:"column:meme_id;not null;uniqueIndex:uk_user_meme_cart,priority:2;index:idx_cart_meme_id" json:"meme_id"`
	CartType  CartType  `gorm:"column:cart_type;type:varchar(16);not null;uniqueIndex:uk_user_meme_cart,priority:3" json:"cart_type"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CartEntry) TableName() string { return "meme_carts" }
