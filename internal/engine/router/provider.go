package router

import (
	"github.com/go-atrium/atrium/internal/engine/service"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/middleware"
	"github.com/google/wire"
)

// ProviderSet 提供路由相关的依赖
var ProviderSet = wire.NewSet(ProvideGuard, NewRouter)

// ProvideGuard 组装资源守卫
func ProvideGuard(
	httpConf *httpx.Http,
	authService *service.AuthService,
	menuService *service.MenuService,
	permService *service.PermissionService,
) *middleware.Guard {
	mode := middleware.ParseEnforcement(httpConf.Guard.Enforce)
	return middleware.NewGuard(authService, menuService, permService, mode)
}
