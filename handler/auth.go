package handler

import (
	"Sirius/pkg/context"
	"Sirius/pkg/response"
	"Sirius/service"
	"Sirius/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	UserService service.IUserService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	auth.POST("/login", context.Wrap(u.Login)) // 登录，首次登录即注册
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := u.UserService.Login(c.Request.Context(), &req)
	if errors.Is(err, types.ErrInvalidCredentials) {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
