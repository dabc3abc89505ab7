package config

const (
	BlobDriverOss   = "oss"
	BlobDriverMinio = "minio"

	DefaultBucket = "memes-storage"
)

// Blob 选择对象存储实现
type Blob struct {
	Driver string `json:"driver" yaml:"driver"`
	Bucket string `json:"bucket" yaml:"bucket"`
}

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
}

type MinioConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	Secure    bool   `json:"secure" yaml:"secure"`
}
