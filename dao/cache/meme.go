package cache

import (
	"Sirius/config"
	"Sirius/pkg/log"
	"Sirius/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	viewMeme     = "meme"
	viewDownload = "meme_download"
	viewTrendy   = "trendy_meme"

	genMeme   = "meme_gen"
	genTrendy = "trendy_gen"

	flightTimeout = 5 * time.Second
)

// KEYS[1] 值 KEYS[2] 版本号；ARGV: 期望版本号, 值, 过期毫秒, 是否 NX
var setIfGenScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
	return 0
end
if ARGV[4] == '1' then
	if redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3], 'NX') then
		return 1
	end
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

var cacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sirius_cache_lookups_total",
		Help: "Read-through cache lookups by view and result",
	},
	[]string{"view", "result"},
)

func init() {
	prometheus.MustRegister(cacheLookups)
}

// MemeStorage meme 读视图缓存：单个聚合、下载描述、trendy。
// 缓存失败只记日志，数据库才是权威来源。
type MemeStorage struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

func NewMemeStorage(rds *redis.Client, conf *config.Cache) *MemeStorage {
	return &MemeStorage{redis: rds, prefix: conf.Prefix, ttl: conf.TTL()}
}

// {prefix}:meme:{id}
func (s *MemeStorage) MemeKey(memeID int64) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, viewMeme, memeID)
}

// {prefix}:meme_download:{id}
func (s *MemeStorage) DownloadKey(memeID int64) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, viewDownload, memeID)
}

// {prefix}:trendy_meme
func (s *MemeStorage) TrendyKey() string {
	return fmt.Sprintf("%s:%s", s.prefix, viewTrendy)
}

func (s *MemeStorage) memeGenKey(memeID int64) string {
	return fmt.Sprintf("%s:%s:%d", s.prefix, genMeme, memeID)
}

func (s *MemeStorage) trendyGenKey() string {
	return fmt.Sprintf("%s:%s", s.prefix, genTrendy)
}

// 版本号比值活得久，值过期后版本号仍可比较
func (s *MemeStorage) genTTL() time.Duration {
	return 2 * s.ttl
}

func (s *MemeStorage) GetMeme(ctx context.Context, memeID int64, fetch func(context.Context) (*types.MemeRead, error)) (*types.MemeRead, error) {
	return load(ctx, s, viewMeme, s.MemeKey(memeID), s.memeGenKey(memeID), fetch)
}

// GetDownload 下载描述不随投票变化，没有版本号
func (s *MemeStorage) GetDownload(ctx context.Context, memeID int64, fetch func(context.Context) (*types.MemeDownload, error)) (*types.MemeDownload, error) {
	return load(ctx, s, viewDownload, s.DownloadKey(memeID), "", fetch)
}

func (s *MemeStorage) GetTrendy(ctx context.Context, fetch func(context.Context) (*types.MemeRead, error)) (*types.MemeRead, error) {
	return load(ctx, s, viewTrendy, s.TrendyKey(), s.trendyGenKey(), fetch)
}

// Invalidate 在一个 MULTI 里递增 meme 和 trendy 的版本号并删除两个 key，
// 任何一次投票都可能改变 trendy。返回 meme 的新版本号，失败返回 0。
func (s *MemeStorage) Invalidate(ctx context.Context, memeID int64) int64 {
	// 事务已提交，请求取消也要删
	ctx = context.WithoutCancel(ctx)
	memeGenKey, trendyGenKey := s.memeGenKey(memeID), s.trendyGenKey()

	var gen *redis.IntCmd
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		gen = pipe.Incr(ctx, memeGenKey)
		pipe.Expire(ctx, memeGenKey, s.genTTL())
		pipe.Incr(ctx, trendyGenKey)
		pipe.Expire(ctx, trendyGenKey, s.genTTL())
		pipe.Del(ctx, s.MemeKey(memeID), s.TrendyKey())
		return nil
	})
	s.group.Forget(s.MemeKey(memeID))
	s.group.Forget(s.TrendyKey())
	if err != nil {
		log.L.Warn("cache invalidate failed", zap.Int64("meme_id", memeID), zap.Error(err))
		return 0
	}
	return gen.Val()
}

// SetMeme 回填投票后的聚合，只有版本号仍是 gen 时才写入，
// 之后的投票已经把版本号往前推了就放弃
func (s *MemeStorage) SetMeme(ctx context.Context, meme *types.MemeRead, gen int64) bool {
	if gen == 0 {
		return false
	}
	return s.setIfGen(ctx, s.MemeKey(meme.ID), s.memeGenKey(meme.ID), strconv.FormatInt(gen, 10), meme, false)
}

// load 读穿透：命中直接返回；未命中查库，库里也没有就不缓存空结果。
// 查库前记下版本号，回填时版本号变了说明中间有投票，放弃回填。
// genKey 为空的视图不受投票影响，直接 SETNX。
func load[T any](ctx context.Context, s *MemeStorage, view, key, genKey string, fetch func(context.Context) (*T, error)) (*T, error) {
	if v, ok := get[T](ctx, s, key); ok {
		cacheLookups.WithLabelValues(view, "hit").Inc()
		return v, nil
	}
	cacheLookups.WithLabelValues(view, "miss").Inc()

	ch := s.group.DoChan(key, func() (interface{}, error) {
		// 发起者取消不影响同一 flight 上等待的其他请求
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()

		gen, genOK := "", true
		if genKey != "" {
			gen, genOK = s.generation(flightCtx, genKey)
		}

		fresh, err := fetch(flightCtx)
		if err != nil || fresh == nil {
			return fresh, err
		}
		switch {
		case genKey == "":
			s.fill(flightCtx, key, fresh)
		case genOK:
			s.setIfGen(flightCtx, key, genKey, gen, fresh, true)
		}
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

func get[T any](ctx context.Context, s *MemeStorage, key string) (*T, bool) {
	payload, err := s.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.L.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		log.L.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &v, true
}

// generation 版本号 key 不存在记为 "0"；读失败时不回填
func (s *MemeStorage) generation(ctx context.Context, genKey string) (string, bool) {
	gen, err := s.redis.Get(ctx, genKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", true
	}
	if err != nil {
		log.L.Warn("cache generation read failed", zap.String("key", genKey), zap.Error(err))
		return "", false
	}
	return gen, true
}

func (s *MemeStorage) fill(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.L.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.redis.SetNX(ctx, key, payload, s.ttl).Err(); err != nil {
		log.L.Warn("cache fill failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *MemeStorage) setIfGen(ctx context.Context, key, genKey, gen string, v any, onlyIfAbsent bool) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		log.L.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	nx := "0"
	if onlyIfAbsent {
		nx = "1"
	}
	written, err := setIfGenScript.Run(ctx, s.redis, []string{key, genKey},
		gen, payload, s.ttl.Milliseconds(), nx).Int()
	if err != nil {
		log.L.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return written == 1
}
