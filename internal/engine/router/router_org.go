package router

import (
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) orgRouter(r fiber.Router) {
	guard := rt.Guard.Require(middleware.GuardConfig{PageId: consts.PageOrgAdmin})

	orgGroup := r.Group("/orgs", guard)
	{
		orgGroup.Get("/", rt.org.ListUnits)
		orgGroup.Get("/:unitId", rt.org.GetUnit)
		orgGroup.Get("/:unitId/descendants", rt.org.GetDescendants)
		orgGroup.Get("/:unitId/ancestors", rt.org.GetAncestors)
		orgGroup.Post("/", rt.org.CreateUnit)
		orgGroup.Put("/:unitId", rt.org.UpdateUnit)
		orgGroup.Delete("/:unitId", rt.org.DeleteUnit)
	}
}
