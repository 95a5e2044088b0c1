package repo

import (
	"context"
	"errors"
	"time"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/redis/go-redis/v9"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/11
 * @file: repo_token.go
 * @description: 会话令牌仓库（redis）
 */

type ITokenRepository interface {
	Save(ctx context.Context, userId, token string, ttl time.Duration) error
	Get(ctx context.Context, userId string) (string, error)
	Delete(ctx context.Context, userId string) error
}

type TokenRepo struct {
	Ctx *ctx.Context
}

func NewTokenRepo(appCtx *ctx.Context) ITokenRepository {
	return &TokenRepo{
		Ctx: appCtx,
	}
}

// Save 写入用户的当前令牌
// SET 覆盖旧值即实现单会话：旧令牌随之失效
func (r *TokenRepo) Save(c context.Context, userId, token string, ttl time.Duration) error {
	return r.Ctx.Redis.Set(c, consts.TokenKey+userId, token, ttl).Err()
}

// Get 读取用户的当前令牌
func (r *TokenRepo) Get(c context.Context, userId string) (string, error) {
	val, err := r.Ctx.Redis.Get(c, consts.TokenKey+userId).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errs.NotFoundf("token for user %s", userId)
		}
		return "", err
	}
	return val, nil
}

// Delete 撤销用户的当前令牌
func (r *TokenRepo) Delete(c context.Context, userId string) error {
	return r.Ctx.Redis.Del(c, consts.TokenKey+userId).Err()
}
