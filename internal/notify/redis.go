package notify

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"entitygraph/internal/domain"
	"entitygraph/internal/graph"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultChannel   = "entitygraph:events"
	defaultQueueSize = 1024
)

// RedisConfig 描述事件推送所用的 Redis。
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	Channel   string `yaml:"channel"`
	QueueSize int    `yaml:"queue_size"`
}

// NewRedisClient 按配置创建客户端，Addr 为空时返回 nil。
func NewRedisClient(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// Message 是推送到 Redis 频道的事件载荷。
type Message struct {
	ID           string               `json:"id"`
	Kind         graph.EventKind      `json:"kind"`
	Relationship *domain.Relationship `json:"relationship,omitempty"`
	At           time.Time            `json:"at"`
}

// channelPublisher 是 *redis.Client 的发布子集。
type channelPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisFanout 把图变更事件异步推送到 Redis 频道。
// 监听回调只入队，队列满时丢弃并记录日志。
type RedisFanout struct {
	client  channelPublisher
	channel string
	queue   chan Message
	dropped atomic.Int64
	logger  *zap.Logger
}

var _ graph.Listener = (*RedisFanout)(nil)

// NewRedisFanout 创建推送器，需要调用 Run 才会真正发送。
func NewRedisFanout(client channelPublisher, cfg RedisConfig, logger *zap.Logger) *RedisFanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	channel := cfg.Channel
	if channel == "" {
		channel = defaultChannel
	}
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}
	return &RedisFanout{client: client, channel: channel, queue: make(chan Message, size), logger: logger}
}

// OnGraphEvent 实现 graph.Listener。
func (f *RedisFanout) OnGraphEvent(e graph.Event) {
	msg := Message{ID: e.ID, Kind: e.Kind, Relationship: e.Relationship, At: e.At}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	select {
	case f.queue <- msg:
	default:
		n := f.dropped.Add(1)
		f.logger.Warn("redis fanout queue full, event dropped",
			zap.String("kind", string(e.Kind)),
			zap.Int64("dropped_total", n))
	}
}

// Dropped 返回累计丢弃的事件数。
func (f *RedisFanout) Dropped() int64 {
	return f.dropped.Load()
}

// Run 持续消费队列直到 ctx 结束。
func (f *RedisFanout) Run(ctx context.Context) {
	f.logger.Info("redis fanout started", zap.String("channel", f.channel))
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("redis fanout stopped", zap.Int("pending", len(f.queue)))
			return
		case msg := <-f.queue:
			f.publish(ctx, msg)
		}
	}
}

func (f *RedisFanout) publish(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		f.logger.Error("encode graph event failed", zap.String("id", msg.ID), zap.Error(err))
		return
	}
	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		f.logger.Error("publish graph event failed",
			zap.String("channel", f.channel),
			zap.String("id", msg.ID),
			zap.Error(err))
	}
}
