package service

import (
	"Sirius/dao"
	"Sirius/models"
	"Sirius/types"
	"context"
)

var _ ICartService = (*CartService)(nil)

type ICartService interface {
	// AddToPersonal 重复添加返回 types.ErrAlreadyInCart
	AddToPersonal(ctx context.Context, userID, memeID int64) error
}

type CartService struct {
	CartDAO *dao.CartDAO
	MemeDAO *dao.MemeDAO
}

func (s *CartService) AddToPersonal(ctx context.Context, userID, memeID int64) error {
	exist, err := s.MemeDAO.IsExist(ctx, "id = ?", memeID)
	if err != nil {
		return err
	}
	if !exist {
		return types.ErrMemeNotFound
	}
	return s.CartDAO.Add(ctx, userID, memeID, models.CartPersonal)
}
