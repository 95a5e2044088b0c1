package ctx

import (
	"context"

	"github.com/go-atrium/atrium/pkg/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/9 0:12
 * @file: ctx.go
 * @description: Global context
 */

type Context struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
	Log   log.ILogger
}

func NewContext(ctx context.Context, db *gorm.DB, rdb *redis.Client, logger log.ILogger) *Context {
	return &Context{
		DB:    db,
		Redis: rdb,
		Ctx:   ctx,
		Log:   logger,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) SetDB(db *gorm.DB) {
	c.DB = db
}

func (c *Context) GetDB() *gorm.DB {
	return c.DB
}

func (c *Context) SetRedis(rdb *redis.Client) {
	c.Redis = rdb
}

func (c *Context) GetRedis() *redis.Client {
	return c.Redis
}
