package repo

import (
	"github.com/google/wire"
)

// ProviderSet 提供仓储层的依赖
var ProviderSet = wire.NewSet(
	NewMenuRepo,
	NewPermissionRepo,
	NewOrgRepo,
	NewUserRepo,
	NewTokenRepo,
)
