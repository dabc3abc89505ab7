package dao

import (
	"Sirius/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByUsername 不存在返回 nil, nil
func (u *Users) FindByUsername(ctx context.Context, username int64) (*models.User, error) {
	user, err := u.Repo.FindByWhere(ctx, "username = ?", username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return user, err
}
