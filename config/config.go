package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Server   *Server         `json:"server" yaml:"server"`
	MySQL    *MySQL          `json:"mysql" yaml:"mysql"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	Cache    *Cache          `json:"cache" yaml:"cache"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Blob     *Blob           `json:"blob" yaml:"blob"`
	Oss      *OssConfig      `json:"oss" yaml:"oss"`
	Minio    *MinioConfig    `json:"minio" yaml:"minio"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// Load 读取配置文件，${VAR} 从环境变量（含 .env）展开
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var conf Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), &conf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	conf.withDefaults()

	return &conf, nil
}

func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultCachePrefix
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpireSeconds <= 0 {
		c.Jwt.ExpireSeconds = DefaultTokenExpireSeconds
	}
	if c.Blob == nil {
		c.Blob = &Blob{}
	}
	if c.Blob.Driver == "" {
		c.Blob.Driver = BlobDriverOss
	}
	if c.Blob.Bucket == "" {
		c.Blob.Bucket = DefaultBucket
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App != nil && c.App.Debug
}
