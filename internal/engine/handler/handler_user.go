/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/15
 * @file: handler_user.go
 * @description: user directory handler
 */

package handler

import (
	"strings"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UserHandler 用户目录处理器
type UserHandler struct {
	userService *service.UserService
	orgService  *service.OrgService
}

func NewUserHandler(userService *service.UserService, orgService *service.OrgService) *UserHandler {
	return &UserHandler{
		userService: userService,
		orgService:  orgService,
	}
}

// GetUser 获取单个用户
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return badRequest(c)
	}
	user, err := h.userService.GetByUserId(c.UserContext(), userId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, user.Info())
}

// GetUserByLogin 按登录名获取用户
func (h *UserHandler) GetUserByLogin(c *fiber.Ctx) error {
	loginId := c.Params("loginId")
	if loginId == "" {
		return badRequest(c)
	}
	user, err := h.userService.GetByLoginId(c.UserContext(), loginId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, user.Info())
}

// CreateUser 创建用户
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req model.CreateUserReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	user, err := h.userService.CreateUser(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, user.Info())
}

// UpdateUser 更新用户资料
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return badRequest(c)
	}
	var req model.UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	user, err := h.userService.UpdateUser(c.UserContext(), userId, &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, user.Info())
}

// DeleteUser 删除用户，连带清理授权与会话
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return badRequest(c)
	}
	if err := h.userService.DeleteUser(c.UserContext(), userId); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// MoveOrg 调整用户的权威组织单元，重算整条挂载链
func (h *UserHandler) MoveOrg(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return badRequest(c)
	}
	var req struct {
		OrgNo uint64 `json:"orgNo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	user, err := h.userService.MoveOrg(c.UserContext(), userId, req.OrgNo)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, user.Info())
}

// CheckLoginId 登录名可用性检查
func (h *UserHandler) CheckLoginId(c *fiber.Ctx) error {
	loginId := c.Query("loginId")
	if loginId == "" {
		return badRequest(c)
	}
	available, err := h.userService.CheckLoginIdAvailable(c.UserContext(), loginId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"available": available})
}

// CheckEmail 邮箱可用性检查
func (h *UserHandler) CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return badRequest(c)
	}
	available, err := h.userService.CheckEmailAvailable(c.UserContext(), email)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"available": available})
}

// CountUnderHierarchy 统计层级过滤集命中的用户数
// 与列表接口共用同一套过滤语义，二者必须一致
func (h *UserHandler) CountUnderHierarchy(c *fiber.Ctx) error {
	filter, ok := hierarchyFilter(c)
	if !ok {
		return badRequest(c)
	}
	total, err := h.orgService.CountActorsUnderHierarchy(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"total": total})
}

// ListUnderHierarchy 分页列出层级过滤集命中的用户
func (h *UserHandler) ListUnderHierarchy(c *fiber.Ctx) error {
	filter, ok := hierarchyFilter(c)
	if !ok {
		return badRequest(c)
	}
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 20)
	page, err := h.orgService.ListActorsUnderHierarchy(c.UserContext(), filter, offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, page)
}

// hierarchyFilter 从查询串解析层级过滤集，id 列表为逗号分隔
func hierarchyFilter(c *fiber.Ctx) (*model.HierarchyFilter, bool) {
	filter := &model.HierarchyFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	for _, part := range []struct {
		key  string
		dest *[]uint64
	}{
		{"groupIds", &filter.GroupIds},
		{"corpIds", &filter.CorpIds},
		{"headqIds", &filter.HeadqIds},
		{"teamIds", &filter.TeamIds},
	} {
		ids, err := splitUint64(c.Query(part.key))
		if err != nil {
			return nil, false
		}
		*part.dest = ids
	}
	return filter, true
}

func splitUint64(raw string) ([]uint64, error) {
	if raw == "" {
		return nil, nil
	}
	pieces := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(pieces))
	for _, p := range pieces {
		id, err := paramQueryUint64(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
