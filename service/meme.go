package service

import (
	"Sirius/dao"
	"Sirius/dao/cache"
	"Sirius/models"
	"Sirius/pkg/log"
	"Sirius/pkg/snowflake"
	"Sirius/types"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ IMemeService = (*MemeService)(nil)

type IMemeService interface {
	// List 列出购物车，personal 只看自己的。空列表不是错误
	List(ctx context.Context, cartType string, userID int64) ([]types.MemeRead, error)

	// Random general 里随机一个，为空返回 nil
	Random(ctx context.Context) (*types.MemeRead, error)

	// Trendy likes 最多的 general meme，没有被 like 过的返回 nil
	Trendy(ctx context.Context) (*types.MemeRead, error)

	// Get 不存在返回 types.ErrMemeNotFound
	Get(ctx context.Context, memeID int64) (*types.MemeRead, error)

	Upload(ctx context.Context, opt *UploadOpt) (*types.MemeAfterCreate, error)

	Download(ctx context.Context, memeID int64) (*types.MemeFile, error)
}

type MemeService struct {
	MemeDAO   *dao.MemeDAO
	MemeCache *cache.MemeStorage
	Storage   IObjectStorage
	Events    IEventPublisher
}

type UploadOpt struct {
	UserID      int64
	Caption     string
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

func (s *MemeService) List(ctx context.Context, cartType string, userID int64) ([]types.MemeRead, error) {
	ct := models.CartType(cartType)
	if !ct.Valid() {
		return nil, types.ErrInvalidCartType
	}
	return s.MemeDAO.ListByCart(ctx, ct, userID)
}

// Random 不走缓存
func (s *MemeService) Random(ctx context.Context) (*types.MemeRead, error) {
	return s.MemeDAO.PickRandom(ctx)
}

func (s *MemeService) Trendy(ctx context.Context) (*types.MemeRead, error) {
	return s.MemeCache.GetTrendy(ctx, s.MemeDAO.PickTrendy)
}

func (s *MemeService) Get(ctx context.Context, memeID int64) (*types.MemeRead, error) {
	meme, err := s.MemeCache.GetMeme(ctx, memeID, func(ctx context.Context) (*types.MemeRead, error) {
		return s.MemeDAO.GetAggregate(ctx, memeID)
	})
	if err != nil {
		return nil, err
	}
	if meme == nil {
		return nil, types.ErrMemeNotFound
	}
	return meme, nil
}

// Upload 先传对象再写库；写库失败删掉已上传的对象
func (s *MemeService) Upload(ctx context.Context, opt *UploadOpt) (*types.MemeAfterCreate, error) {
	caption := strings.TrimSpace(opt.Caption)
	if caption == "" {
		return nil, types.ErrEmptyCaption
	}

	key := objectKey(time.Now(), opt.Filename, snowflake.GenID())
	if err := s.Storage.Put(ctx, key, opt.Body, opt.Size, opt.ContentType); err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	meme := &models.Meme{
		UserID:     opt.UserID,
		Caption:    caption,
		StorageKey: key,
	}
	if err := s.MemeDAO.CreateWithCart(ctx, meme); err != nil {
		if derr := s.Storage.Delete(ctx, key); derr != nil {
			log.L.Warn("delete orphan object", zap.String("key", key), zap.Error(derr))
		}
		return nil, fmt.Errorf("create meme: %w", err)
	}

	publish(ctx, s.Events, types.EventTagMemeCreated, &types.MemeCreatedEvent{
		MemeID:     meme.ID,
		UserID:     opt.UserID,
		StorageKey: key,
	})
	return &types.MemeAfterCreate{ID: meme.ID}, nil
}

func (s *MemeService) Download(ctx context.Context, memeID int64) (*types.MemeFile, error) {
	desc, err := s.MemeCache.GetDownload(ctx, memeID, func(ctx context.Context) (*types.MemeDownload, error) {
		return s.MemeDAO.GetDownload(ctx, memeID)
	})
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, types.ErrMemeNotFound
	}

	body, err := s.Storage.Get(ctx, desc.StorageKey)
	if err != nil {
		if errors.Is(err, types.ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get object %s: %w", desc.StorageKey, err)
	}

	name := path.Base(desc.StorageKey)
	return &types.MemeFile{
		Filename:    name,
		ContentType: contentTypeOf(name),
		Body:        body,
	}, nil
}

// objectKey {YYYY-MM-DD}/{basename}_{id}{.ext}
func objectKey(now time.Time, filename string, id int64) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		name = "meme"
	}
	return fmt.Sprintf("%s/%s_%d%s", now.Format(time.DateOnly), name, id, strings.ToLower(ext))
}

func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
