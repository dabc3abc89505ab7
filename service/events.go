package service

import (
	"Sirius/pkg/log"
	"Sirius/pkg/rocketmq"
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

var _ IEventPublisher = (*rocketmq.Publisher)(nil)

type IEventPublisher interface {
	Publish(ctx context.Context, tag string, body []byte) error
}

// publish 事务已提交，投递失败只记日志
func publish(ctx context.Context, p IEventPublisher, tag string, event any) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.L.Warn("encode event", zap.String("tag", tag), zap.Error(err))
		return
	}
	if err := p.Publish(ctx, tag, body); err != nil && !errors.Is(err, rocketmq.ErrNotConfigured) {
		log.L.Warn("publish event", zap.String("tag", tag), zap.Error(err))
	}
}
