package service

import (
	"Sirius/config"
	"Sirius/dao"
	"Sirius/models"
	"Sirius/pkg/jwt"
	"Sirius/pkg/log"
	"Sirius/types"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	// Login 用户名首次出现时注册，之后校验 code
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
}

type UserService struct {
	UsersRepo *dao.Users
	Jwt       *config.Jwt
}

func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if req.Code == "" {
		return nil, types.ErrInvalidCredentials
	}

	user, err := s.UsersRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.register(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.CodeHash), []byte(req.Code)); err != nil {
		return nil, types.ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken([]byte(s.Jwt.Secret), user.ID, jwt.TypeAccess, s.Jwt.Expire())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &types.LoginResponse{AccessToken: token}, nil
}

// register 并发注册同一用户名时，输掉的一方读回已存在的用户
func (s *UserService) register(ctx context.Context, req *types.LoginRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Tg:       req.Tg,
		CodeHash: string(hash),
	}
	err = s.UsersRepo.Create(ctx, user)
	if err == nil {
		log.L.Info("user registered", zap.Int64("user_id", user.ID), zap.Int64("username", user.Username))
		return user, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	existing, err := s.UsersRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, types.ErrUserNotFound
	}
	return existing, nil
}
