/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/15
 * @file: handler_org.go
 * @description: org hierarchy handler
 */

package handler

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// OrgHandler 组织层级处理器
type OrgHandler struct {
	orgService *service.OrgService
}

func NewOrgHandler(orgService *service.OrgService) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// ListUnits 列出全部组织单元
func (h *OrgHandler) ListUnits(c *fiber.Ctx) error {
	units, err := h.orgService.ListUnits(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, units)
}

// GetUnit 获取单个组织单元
func (h *OrgHandler) GetUnit(c *fiber.Ctx) error {
	id, err := paramUint64(c, "unitId")
	if err != nil {
		return badRequest(c)
	}
	unit, err := h.orgService.GetUnit(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, unit)
}

// CreateUnit 创建组织单元，父级必须是更粗粒度的层级
func (h *OrgHandler) CreateUnit(c *fiber.Ctx) error {
	var req model.CreateOrgUnitReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	unit, err := h.orgService.CreateUnit(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, unit)
}

// UpdateUnit 更新组织单元
func (h *OrgHandler) UpdateUnit(c *fiber.Ctx) error {
	id, err := paramUint64(c, "unitId")
	if err != nil {
		return badRequest(c)
	}
	var req model.UpdateOrgUnitReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	unit, err := h.orgService.UpdateUnit(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, unit)
}

// DeleteUnit 删除组织单元，存在子级时拒绝
func (h *OrgHandler) DeleteUnit(c *fiber.Ctx) error {
	id, err := paramUint64(c, "unitId")
	if err != nil {
		return badRequest(c)
	}
	if err := h.orgService.DeleteUnit(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// GetDescendants 获取某单元及其全部后代单元ID
func (h *OrgHandler) GetDescendants(c *fiber.Ctx) error {
	id, err := paramUint64(c, "unitId")
	if err != nil {
		return badRequest(c)
	}
	ids, err := h.orgService.ResolveDescendantUnits(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, ids)
}

// GetAncestors 获取某单元到根的祖先链
func (h *OrgHandler) GetAncestors(c *fiber.Ctx) error {
	id, err := paramUint64(c, "unitId")
	if err != nil {
		return badRequest(c)
	}
	chain, err := h.orgService.AncestorChain(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, chain)
}
