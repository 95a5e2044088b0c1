package http

import (
	"time"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:38
 * @file: http.go
 * @description: http server config
 */

type Http struct {
	Host            string
	Port            int
	BodyLimit       int
	AccessLog       bool
	ExposeMetrics   bool
	PProf           bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
	Guard           Guard
}

type TLS struct {
	CertFile string
	KeyFile  string
}

type Auth struct {
	SecretKey      string
	AccessExpire   time.Duration // 访问令牌有效期（分钟）
	RedisKeyPrefix string
}

// Guard 资源守卫配置
// Enforce: always / never / legacy
type Guard struct {
	Enforce string
}
