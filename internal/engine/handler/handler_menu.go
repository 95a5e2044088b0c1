/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/14
 * @file: handler_menu.go
 * @description: menu tree handler
 */

package handler

import (
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler 菜单树管理处理器
type MenuHandler struct {
	menuService *service.MenuService
}

func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetTree 获取完整菜单树
func (h *MenuHandler) GetTree(c *fiber.Ctx) error {
	tree, err := h.menuService.GetFullTree(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, tree)
}

// GetSubtree 获取以指定节点为根的子树
func (h *MenuHandler) GetSubtree(c *fiber.Ctx) error {
	id, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	subtree, err := h.menuService.GetSubtree(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, subtree)
}

// GetMenu 获取单个菜单
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	id, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	menu, err := h.menuService.GetMenu(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, menu)
}

// ListMenus 列出启用且可见的菜单, 带 level 参数时按层级过滤
func (h *MenuHandler) ListMenus(c *fiber.Ctx) error {
	if raw := c.Query("level"); raw != "" {
		level := c.QueryInt("level", -1)
		if level < 0 {
			return badRequest(c)
		}
		menus, err := h.menuService.ListByLevel(c.UserContext(), level)
		if err != nil {
			return fail(c, err)
		}
		return http.WithRepJSON(c, menus)
	}
	menus, err := h.menuService.ListActive(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, menus)
}

// ListChildren 按父节点列出直接子节点，parentId 为空表示根层
func (h *MenuHandler) ListChildren(c *fiber.Ctx) error {
	var parentId *uint64
	if raw := c.Query("parentId"); raw != "" {
		id, err := paramQueryUint64(raw)
		if err != nil {
			return badRequest(c)
		}
		parentId = &id
	}
	menus, err := h.menuService.ListChildren(c.UserContext(), parentId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, menus)
}

// CreateMenu 创建菜单
func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	var req model.CreateMenuReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	menu, err := h.menuService.CreateMenu(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, menu)
}

// UpdateMenu 更新菜单，可迁移父节点
func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	id, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	var req model.UpdateMenuReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	menu, err := h.menuService.UpdateMenu(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, menu)
}

// SetActive 启用/停用菜单
func (h *MenuHandler) SetActive(c *fiber.Ctx) error {
	id, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if err := h.menuService.SetActive(c.UserContext(), id, req.Active); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// DeleteMenu 删除菜单及其整棵子树，连带清理授权
func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	id, err := paramUint64(c, "menuId")
	if err != nil {
		return badRequest(c)
	}
	if err := h.menuService.DeleteMenu(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// Reorder 调整同级排序
func (h *MenuHandler) Reorder(c *fiber.Ctx) error {
	var req model.ReorderMenuReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if err := h.menuService.Reorder(c.UserContext(), &req); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}
