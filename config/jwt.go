package config

import "time"

// 6 天
const DefaultTokenExpireSeconds = 6 * 24 * 3600

type Jwt struct {
	Secret        string `json:"secret" yaml:"secret"`
	ExpireSeconds int64  `json:"expire_seconds" yaml:"expire_seconds"`
}

func (j *Jwt) Expire() time.Duration {
	return time.Duration(j.ExpireSeconds) * time.Second
}

func ProvideJwtConfig(cfg *Config) *Jwt {
	return cfg.Jwt
}
