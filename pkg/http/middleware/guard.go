// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/go-atrium/atrium/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// TokenValidator 校验令牌并解析用户ID
type TokenValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// ResourceResolver 按 page_id 解析受守卫的资源
type ResourceResolver interface {
	GetMenuByPageId(ctx context.Context, pageId string) (*model.Menu, error)
}

// GrantChecker 授权判定
type GrantChecker interface {
	IsGranted(ctx context.Context, userId string, menuId uint64) (bool, error)
}

// Enforcement 资源检查的执行策略，构造时从配置选定
type Enforcement int

const (
	// EnforceAlways 令牌 + 资源授权全量执行
	EnforceAlways Enforcement = iota
	// EnforceNever 跳过资源授权检查（令牌检查不受影响）
	EnforceNever
	// LegacyCompat 评估资源授权但只记录不拦截，用于灰度迁移
	LegacyCompat
)

// ParseEnforcement maps the config string onto an Enforcement mode.
func ParseEnforcement(mode string) Enforcement {
	switch mode {
	case "never":
		return EnforceNever
	case "legacy":
		return LegacyCompat
	default:
		return EnforceAlways
	}
}

// GuardConfig 单个路由(组)的守卫声明
// 两个豁免开关相互独立：SkipPermission 仍要求有效令牌，SkipToken 是公开端点
type GuardConfig struct {
	PageId         string
	SkipPermission bool
	SkipToken      bool
}

// Guard 请求边界的授权拦截器
// 失败一律短路为统一拒绝结构，绝不向外抛错，也绝不失败放行
type Guard struct {
	tokens    TokenValidator
	resources ResourceResolver
	grants    GrantChecker
	mode      Enforcement
}

func NewGuard(tokens TokenValidator, resources ResourceResolver, grants GrantChecker, mode Enforcement) *Guard {
	return &Guard{
		tokens:    tokens,
		resources: resources,
		grants:    grants,
		mode:      mode,
	}
}

// Require returns the fiber handler guarding one declared resource.
func (g *Guard) Require(cfg GuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.SkipToken {
			return c.Next()
		}

		ctx := c.UserContext()

		// 1. 提取凭证
		token, ok := bearerToken(c)
		if !ok {
			metrics.RecordGuardDecision(metrics.OutcomeUnauthenticated)
			return httpx.WithRepDenied(c, httpx.Unauthenticated)
		}

		// 2. 校验令牌，失败原因逐一计数
		userId, err := g.tokens.Validate(ctx, token)
		if err != nil {
			if cause, ok := jwt.CauseOf(err); ok {
				metrics.RecordTokenFailure(string(cause))
				metrics.RecordGuardDecision(metrics.OutcomeTokenInvalid)
				return httpx.WithRepDenied(c, denialFor(cause))
			}
			// 存储故障按失败保守处理：拒绝，不放行
			log.Errorw("token validation failed", "error", err)
			metrics.RecordGuardDecision(metrics.OutcomeTokenInvalid)
			return httpx.WithRepDenied(c, httpx.Unauthenticated)
		}
		c.Locals(consts.LocalUserId, userId)

		if cfg.SkipPermission || g.mode == EnforceNever {
			metrics.RecordGuardDecision(metrics.OutcomeAllow)
			return c.Next()
		}

		// 3. 解析声明的资源，未知即拒绝，绝不失败放行
		menu, err := g.resources.GetMenuByPageId(ctx, cfg.PageId)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				metrics.RecordGuardDecision(metrics.OutcomeUnknownResource)
				return httpx.WithRepDenied(c, httpx.ResourceUnknown)
			}
			log.Errorw("resource resolution failed", "pageId", cfg.PageId, "error", err)
			metrics.RecordGuardDecision(metrics.OutcomeForbidden)
			return httpx.WithRepDenied(c, httpx.Forbidden)
		}

		// 4. 授权判定，默认拒绝
		granted, err := g.grants.IsGranted(ctx, userId, menu.ID)
		if err != nil {
			log.Errorw("grant lookup failed", "userId", userId, "menuId", menu.ID, "error", err)
			metrics.RecordGuardDecision(metrics.OutcomeForbidden)
			return httpx.WithRepDenied(c, httpx.Forbidden)
		}
		if !granted {
			if g.mode == LegacyCompat {
				log.Warnw("legacy compat: permission denied but not enforced",
					"userId", userId, "pageId", cfg.PageId)
			} else {
				metrics.RecordGuardDecision(metrics.OutcomeForbidden)
				return httpx.WithRepDenied(c, httpx.Forbidden)
			}
		}

		// 5. 放行，被包裹的操作原样执行
		metrics.RecordGuardDecision(metrics.OutcomeAllow)
		return c.Next()
	}
}

// bearerToken 从 Authorization 头提取 Bearer 令牌
func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// denialFor maps a token failure cause onto its catalog entry.
func denialFor(cause jwt.Cause) *httpx.Response {
	switch cause {
	case jwt.CauseExpired:
		return httpx.TokenExpired
	case jwt.CauseSignature:
		return httpx.TokenSignatureInvalid
	case jwt.CauseUnsupported:
		return httpx.TokenUnsupported
	default:
		return httpx.TokenMalformed
	}
}
