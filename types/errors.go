package types

import "errors"

// 业务结果，不是故障
var (
	ErrMemeNotFound       = errors.New("meme not found")
	ErrAlreadyInCart      = errors.New("meme already in cart")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidMark        = errors.New("mark must be like or dislike")
	ErrInvalidCartType    = errors.New("cart_type must be general or personal")
	ErrObjectNotFound     = errors.New("object not found")
	ErrEmptyCaption       = errors.New("caption must not be empty")
)
