package service

import (
	"Sirius/pkg/rocketmq"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(MemeService), "*"),
	wire.Bind(new(IMemeService), new(*MemeService)),

	wire.Struct(new(RatingService), "*"),
	wire.Bind(new(IRatingService), new(*RatingService)),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	wire.Bind(new(IEventPublisher), new(*rocketmq.Publisher)),

	NewObjectStorage,
)
