package service

import (
	"Sirius/dao"
	"Sirius/dao/cache"
	"Sirius/models"
	"Sirius/pkg/log"
	"Sirius/types"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var _ IRatingService = (*RatingService)(nil)

type IRatingService interface {
	// Mark 切换式评分：同一 mark 再投一次撤销，相反 mark 翻转。返回最新聚合
	Mark(ctx context.Context, userID, memeID int64, mark string) (*types.MemeRead, error)
}

type RatingService struct {
	VoteDAO   *dao.VoteDAO
	MemeDAO   *dao.MemeDAO
	MemeCache *cache.MemeStorage
	Events    IEventPublisher
}

func (s *RatingService) Mark(ctx context.Context, userID, memeID int64, mark string) (*types.MemeRead, error) {
	value := models.VoteValue(mark)
	if !value.Valid() {
		return nil, types.ErrInvalidMark
	}

	state, err := s.VoteDAO.Toggle(ctx, userID, memeID, value)
	if err != nil {
		if errors.Is(err, types.ErrMemeNotFound) || errors.Is(err, types.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle vote: %w", err)
	}
	log.L.Debug("vote toggled",
		zap.Int64("user_id", userID),
		zap.Int64("meme_id", memeID),
		zap.String("state", state.String()),
	)

	// 事务已提交：先删掉旧聚合和 trendy，再从库里读新值回填。
	// 回填带上本次的版本号，并发的其他投票更新过就不写
	gen := s.MemeCache.Invalidate(ctx, memeID)

	fresh, err := s.MemeDAO.GetAggregate(ctx, memeID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, types.ErrMemeNotFound
	}
	if !s.MemeCache.SetMeme(ctx, fresh, gen) {
		log.L.Debug("skip repopulate, newer vote", zap.Int64("meme_id", memeID), zap.Int64("gen", gen))
	}

	publish(ctx, s.Events, types.EventTagMemeRated, &types.MemeRatedEvent{
		MemeID:   memeID,
		UserID:   userID,
		Mark:     state.String(),
		Likes:    fresh.Likes,
		Dislikes: fresh.Dislikes,
	})
	return fresh, nil
}
