//go:build wireinject
// +build wireinject

package main

import (
	"Sirius/config"
	"Sirius/dao"
	"Sirius/dao/cache"
	"Sirius/handler"
	"Sirius/pkg/client"
	"Sirius/pkg/database"
	"Sirius/pkg/rocketmq"
	"Sirius/pkg/server"
	"Sirius/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideCacheConfig,
		config.ProvideJwtConfig,
		config.ProvideRocketMQConfig,
		rocketmq.NewPublisher,
		server.NewGinEngine,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Meme), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil, nil
}
