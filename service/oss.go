package service

import (
	"Sirius/types"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
)

type OssStorage struct {
	Client     *oss.Client
	BucketName string
}

func NewOssStorage(client *oss.Client, bucket string) *OssStorage {
	return &OssStorage{
		Client:     client,
		BucketName: bucket,
	}
}

// Put 上传 Reader（HTTP 上传场景）
func (s *OssStorage) Put(
	ctx context.Context,
	key string,
	body io.Reader,
	size int64,
	contentType string,
) error {
	req := &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
		Body:   body,
	}
	if contentType != "" {
		req.ContentType = oss.Ptr(contentType)
	}
	if size >= 0 {
		req.ContentLength = oss.Ptr(size)
	}
	_, err := s.Client.PutObject(ctx, req)
	return err
}

// Get 下载为流
func (s *OssStorage) Get(
	ctx context.Context,
	key string,
) (io.ReadCloser, error) {

	out, err := s.Client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	})
	if err != nil {
		var serr *oss.ServiceError
		if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
			return nil, types.ErrObjectNotFound
		}
		return nil, err
	}

	return out.Body, nil
}

// Delete 删除对象
func (s *OssStorage) Delete(
	ctx context.Context,
	key string,
) error {

	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	})
	return err
}
