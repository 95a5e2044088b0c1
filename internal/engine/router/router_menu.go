package router

import (
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) menuRouter(r fiber.Router) {
	guard := rt.Guard.Require(middleware.GuardConfig{PageId: consts.PageMenuAdmin})

	menuGroup := r.Group("/menus", guard)
	{
		menuGroup.Get("/", rt.menu.ListMenus)
		menuGroup.Get("/tree", rt.menu.GetTree)
		menuGroup.Get("/children", rt.menu.ListChildren)
		menuGroup.Get("/:menuId", rt.menu.GetMenu)
		menuGroup.Get("/:menuId/subtree", rt.menu.GetSubtree)
		menuGroup.Post("/", rt.menu.CreateMenu)
		menuGroup.Put("/:menuId", rt.menu.UpdateMenu)
		menuGroup.Put("/:menuId/active", rt.menu.SetActive)
		menuGroup.Delete("/:menuId", rt.menu.DeleteMenu)
		menuGroup.Post("/reorder", rt.menu.Reorder)
	}
}
