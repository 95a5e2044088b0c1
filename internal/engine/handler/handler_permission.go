/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/14
 * @file: handler_permission.go
 * @description: menu grant handler
 */

package handler

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// PermissionHandler 菜单授权处理器
type PermissionHandler struct {
	permService *service.PermissionService
	menuService *service.MenuService
}

func NewPermissionHandler(permService *service.PermissionService, menuService *service.MenuService) *PermissionHandler {
	return &PermissionHandler{
		permService: permService,
		menuService: menuService,
	}
}

// Grant 授权单个菜单
func (h *PermissionHandler) Grant(c *fiber.Ctx) error {
	var req model.GrantReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if req.UserId == "" || req.MenuId == 0 {
		return badRequest(c)
	}
	if err := h.permService.Grant(c.UserContext(), req.UserId, req.MenuId); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// Revoke 撤销授权，落为显式拒绝，幂等
func (h *PermissionHandler) Revoke(c *fiber.Ctx) error {
	var req model.GrantReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if req.UserId == "" || req.MenuId == 0 {
		return badRequest(c)
	}
	if err := h.permService.Revoke(c.UserContext(), req.UserId, req.MenuId); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// BulkGrant 批量授权
func (h *PermissionHandler) BulkGrant(c *fiber.Ctx) error {
	var req model.BulkGrantReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if req.UserId == "" || len(req.MenuIds) == 0 {
		return badRequest(c)
	}
	if err := h.permService.BulkGrant(c.UserContext(), req.UserId, req.MenuIds); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// GrantSubtree 授权某节点下整棵子树
// 先展开子树再批量写入，授权不做隐式继承，展开发生在写入时
func (h *PermissionHandler) GrantSubtree(c *fiber.Ctx) error {
	menuId, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	var req struct {
		UserId string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserId == "" {
		return badRequest(c)
	}
	ids, err := h.menuService.SubtreeIds(c.UserContext(), menuId)
	if err != nil {
		return fail(c, err)
	}
	if err := h.permService.BulkGrant(c.UserContext(), req.UserId, ids); err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"granted": len(ids)})
}

// Check 查询单点授权判定
func (h *PermissionHandler) Check(c *fiber.Ctx) error {
	menuId, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	userId := c.Query("userId")
	if userId == "" {
		return badRequest(c)
	}
	granted, err := h.permService.IsGranted(c.UserContext(), userId, menuId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"granted": granted})
}

// ListUserMenus 列出用户已授权的菜单ID
func (h *PermissionHandler) ListUserMenus(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return badRequest(c)
	}
	menuIds, err := h.permService.ListGrantedMenus(c.UserContext(), userId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, menuIds)
}

// ClearUserGrants 清空某用户的全部授权, 事务内执行
func (h *PermissionHandler) ClearUserGrants(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return badRequest(c)
	}
	if err := h.permService.ClearAll(c.UserContext(), userId); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// ListMenuActors 列出持有某菜单授权的用户ID
func (h *PermissionHandler) ListMenuActors(c *fiber.Ctx) error {
	menuId, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	userIds, err := h.permService.ListGrantedActors(c.UserContext(), menuId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, userIds)
}
