package router

import (
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) authRouter(r fiber.Router) {
	authGroup := r.Group("/auth")
	{
		// 登录是唯一的公开端点
		authGroup.Post("/login",
			rt.Guard.Require(middleware.GuardConfig{SkipToken: true}),
			rt.auth.Login)

		// 需要有效令牌，但不做资源授权
		authGroup.Post("/logout",
			rt.Guard.Require(middleware.GuardConfig{SkipPermission: true}),
			rt.auth.Logout)
		authGroup.Get("/verify",
			rt.Guard.Require(middleware.GuardConfig{SkipPermission: true}),
			rt.auth.Verify)
	}
}
