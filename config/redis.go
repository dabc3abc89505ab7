package config

import "time"

const (
	DefaultCachePrefix     = "sirius"
	DefaultCacheTTLSeconds = 3600
)

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

// Cache 读缓存配置，所有 key 都挂在 Prefix 下
type Cache struct {
	Prefix     string `json:"prefix" yaml:"prefix"`
	TTLSeconds int    `json:"ttl_seconds" yaml:"ttl_seconds"`
}

func (c *Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func ProvideCacheConfig(cfg *Config) *Cache {
	return cfg.Cache
}
