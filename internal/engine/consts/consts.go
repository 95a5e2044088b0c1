package consts

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/10
 * @file: consts.go
 * @description: shared constants
 */

// Redis key prefixes.
const (
	// TokenKey 每个用户只保留一个有效令牌（单会话）
	TokenKey = "atrium:auth:token:"

	// UserMenuKey 用户已授权菜单集合缓存
	UserMenuKey = "atrium:perm:menus:"
)

// Page ids declared by the admin routes.
const (
	PageMenuAdmin       = "admin.menus"
	PageUserAdmin       = "admin.users"
	PageOrgAdmin        = "admin.orgs"
	PagePermissionAdmin = "admin.permissions"
)

// fiber Locals keys.
const (
	LocalUserId = "userId"
)
