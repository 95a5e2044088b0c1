package handler

import (
	"github.com/google/wire"
)

// ProviderSet 提供处理器相关的依赖
var ProviderSet = wire.NewSet(
	NewMenuHandler,
	NewPermissionHandler,
	NewOrgHandler,
	NewUserHandler,
	NewAuthHandler,
)
