package dao

import (
	"Sirius/models"
	"Sirius/types"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartDAO struct {
	Repo[models.CartEntry]
}

func NewCartDAO(db *gorm.DB) *CartDAO {
	return &CartDAO{Repo: NewRepo[models.CartEntry](db)}
}

// Add 唯一键冲突时返回 types.ErrAlreadyInCart
func (d *CartDAO) Add(ctx context.Context, userID, memeID int64, cartType models.CartType) error {
	entry := models.CartEntry{UserID: userID, MemeID: memeID, CartType: cartType}
	res := d.Db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return types.ErrAlreadyInCart
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrAlreadyInCart
	}
	return nil
}

func (d *CartDAO) CountEntries(ctx context.Context, userID, memeID int64, cartType models.CartType) (int64, error) {
	var n int64
	err := d.Db.WithContext(ctx).Model(&models.CartEntry{}).
		Where("user_id = ? AND meme_id = ? AND cart_type = ?", userID, memeID, cartType).
		Count(&n).Error
	return n, err
}
