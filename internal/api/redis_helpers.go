package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// quotaCounter 是 AI 编辑每日额度计数所需的最小 Redis 能力，
// 便于测试用假实现替换真实客户端。
type quotaCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// bumpQuota 自增额度计数并返回新值。
// 只在首次自增时设置过期时间，窗口由第一次调用起算；
// Expire 失败不影响计数结果，宁可少限也不误伤请求。
func bumpQuota(ctx context.Context, client quotaCounter, key string, window time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, window).Err()
	}
	return count, nil
}
