package server

import (
	"Sirius/handler"
)

type Handlers struct {
	Auth *handler.Auth
	Meme *handler.Meme
}
