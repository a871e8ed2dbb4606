package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
)

// Client wraps go-redis for request rate limiting and checkout notices.
// A nil *Client is valid and turns every call into a no-op.
type Client struct {
	rdb             *goredis.Client
	checkoutChannel string
	logger          *zap.Logger
}

// NewClient connects to Redis and pings it
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	channel := cfg.CheckoutChannel
	if channel == "" {
		channel = "pulse:checkouts"
	}
	return &Client{rdb: rdb, checkoutChannel: channel, logger: logger}, nil
}

// ── rate limiting ──

// CheckRateLimit records one hit for key and reports whether it is within
// limit hits per sliding window.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}
	now := time.Now()
	member := strconv.FormatInt(now.UnixNano(), 10)
	floor := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", floor)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() <= int64(limit), nil
}

// ── checkout notices ──

// CheckoutNotice is published after a batch checkout commits.
type CheckoutNotice struct {
	SessionID   string    `json:"session_id"`
	BatchID     string    `json:"batch_id"`
	Sequence    int       `json:"sequence_number"`
	CheckoutAt  time.Time `json:"checkout_at"`
	Delayed     bool      `json:"delayed"`
	AutoStopped bool      `json:"auto_stopped"`
}

// PublishCheckout sends a notice on the checkout channel.
func (c *Client) PublishCheckout(ctx context.Context, n CheckoutNotice) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return c.rdb.Publish(ctx, c.checkoutChannel, payload).Err()
}

// Close closes the connection
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
