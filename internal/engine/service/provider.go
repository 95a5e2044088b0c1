package service

import (
	"github.com/google/wire"
)

// ProviderSet 提供服务层的依赖
var ProviderSet = wire.NewSet(
	NewMenuService,
	NewPermissionService,
	NewOrgService,
	NewUserService,
	NewAuthService,
)
