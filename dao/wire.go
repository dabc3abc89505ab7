package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewMemeDAO,
	NewVoteDAO,
	NewCartDAO,
)
