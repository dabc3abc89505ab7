package rocketmq

import (
	"Sirius/config"
	"Sirius/pkg/log"
	"context"
	"errors"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Publisher 领域事件投递，未配置 nameserver 时只打日志
type Publisher struct {
	producer rocketmq.Producer
	topic    string
}

func NewPublisher(cfg *config.RocketMQConfig) (*Publisher, func(), error) {
	if len(cfg.NameServer) == 0 || cfg.Topic == "" {
		log.L.Info("rocketmq not configured, events are dropped")
		return &Publisher{}, func() {}, nil
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		return nil, nil, err
	}
	if err = p.Start(); err != nil {
		return nil, nil, err
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))

	cleanup := func() {
		if err := p.Shutdown(); err != nil {
			log.L.Warn("shutdown producer", zap.Error(err))
		}
	}
	return &Publisher{producer: p, topic: cfg.Topic}, cleanup, nil
}

var ErrNotConfigured = errors.New("rocketmq producer not configured")

// Publish 同步发送，tag 用于消费端按事件类型过滤
func (p *Publisher) Publish(ctx context.Context, tag string, body []byte) error {
	if p.producer == nil {
		log.L.Debug("drop event", zap.String("tag", tag))
		return ErrNotConfigured
	}

	msg := primitive.NewMessage(p.topic, body).WithTag(tag)
	res, err := p.producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Debug("send message success", zap.String("msg_id", res.MsgID), zap.String("tag", tag))
	return nil
}
