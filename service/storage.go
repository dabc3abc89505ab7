package service

import (
	"Sirius/config"
	"Sirius/pkg/oss"
	"context"
	"fmt"
	"io"
)

var _ IObjectStorage = (*OssStorage)(nil)
var _ IObjectStorage = (*MinioStorage)(nil)

// IObjectStorage 对象存储，只按 key 读写，不关心内容
type IObjectStorage interface {
	// Put 上传流，size 未知时传 -1
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Get 不存在返回 types.ErrObjectNotFound
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	Delete(ctx context.Context, key string) error
}

// NewObjectStorage 按 blob.driver 选择 oss 或 minio
func NewObjectStorage(conf *config.Config) (IObjectStorage, error) {
	switch conf.Blob.Driver {
	case config.BlobDriverOss:
		if conf.Oss == nil {
			return nil, fmt.Errorf("blob driver %q: missing oss config", conf.Blob.Driver)
		}
		return NewOssStorage(oss.GetOssClient(conf.Oss), conf.Blob.Bucket), nil
	case config.BlobDriverMinio:
		if conf.Minio == nil {
			return nil, fmt.Errorf("blob driver %q: missing minio config", conf.Blob.Driver)
		}
		return NewMinioStorage(conf.Minio, conf.Blob.Bucket)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", conf.Blob.Driver)
	}
}
