package types

type LoginRequest struct {
	Username int64  `json:"username" binding:"required"`
	Tg       string `json:"tg" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
