package router

import (
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) userRouter(r fiber.Router) {
	guard := rt.Guard.Require(middleware.GuardConfig{PageId: consts.PageUserAdmin})

	userGroup := r.Group("/users", guard)
	{
		// 统计与列表共用同一过滤语义
		userGroup.Get("/count", rt.user.CountUnderHierarchy)
		userGroup.Get("/", rt.user.ListUnderHierarchy)

		userGroup.Get("/check/loginId", rt.user.CheckLoginId)
		userGroup.Get("/check/email", rt.user.CheckEmail)
		userGroup.Get("/byLogin/:loginId", rt.user.GetUserByLogin)

		userGroup.Get("/:userId", rt.user.GetUser)
		userGroup.Post("/", rt.user.CreateUser)
		userGroup.Put("/:userId", rt.user.UpdateUser)
		userGroup.Put("/:userId/org", rt.user.MoveOrg)
		userGroup.Delete("/:userId", rt.user.DeleteUser)
	}
}
