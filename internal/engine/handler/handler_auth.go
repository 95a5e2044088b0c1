/**
 * @author: gagral.x@gmail.com
 * @time: 2025/9/16
 * @file: handler_auth.go
 * @description: login / logout / session verify
 */

package handler

import (
	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Login 登录，签发新令牌并覆盖既有会话
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.Login
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	if req.LoginId == "" || req.Password == "" {
		return badRequest(c)
	}
	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// Logout 注销当前会话
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userId, ok := c.Locals(consts.LocalUserId).(string)
	if !ok || userId == "" {
		return http.WithRepDenied(c, http.Unauthenticated)
	}
	if err := h.authService.Revoke(c.UserContext(), userId); err != nil {
		return fail(c, err)
	}
	return http.WithRepNotDetail(c)
}

// Verify 回显当前会话对应的用户，供前端恢复登录态
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	userId, ok := c.Locals(consts.LocalUserId).(string)
	if !ok || userId == "" {
		return http.WithRepDenied(c, http.Unauthenticated)
	}
	user, err := h.userService.GetByUserId(c.UserContext(), userId)
	if err != nil {
		return fail(c, err)
	}
	return http.WithRepJSON(c, user.Info())
}
