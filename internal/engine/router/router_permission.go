package router

import (
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) permissionRouter(r fiber.Router) {
	guard := rt.Guard.Require(middleware.GuardConfig{PageId: consts.PagePermissionAdmin})

	permGroup := r.Group("/permissions", guard)
	{
		permGroup.Post("/grant", rt.perm.Grant)
		permGroup.Post("/revoke", rt.perm.Revoke)
		permGroup.Post("/bulk", rt.perm.BulkGrant)
		permGroup.Post("/menus/:menuId/subtree", rt.perm.GrantSubtree)
		permGroup.Get("/menus/:menuId/check", rt.perm.Check)
		permGroup.Get("/menus/:menuId/actors", rt.perm.ListMenuActors)
		permGroup.Get("/users/:userId/menus", rt.perm.ListUserMenus)
		permGroup.Delete("/users/:userId", rt.perm.ClearUserGrants)
	}
}
