package model

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/10
 * @file: model_permission.go
 * @description: 用户-菜单授权记录
 */

// MenuPermission (user_id, menu_id) 唯一
// 无记录或 granted=0 均视为拒绝；只有显式 granted=1 才授权
// 父节点授权不隐式下传，子树授权走 BulkGrant
type MenuPermission struct {
	BaseModel
	UserId  string `gorm:"column:user_id;not null;uniqueIndex:uk_user_menu" json:"userId"`
	MenuId  uint64 `gorm:"column:menu_id;not null;uniqueIndex:uk_user_menu" json:"menuId"`
	Granted int    `gorm:"column:granted;default:0" json:"granted"` // 0-拒绝，1-授权
}

func (MenuPermission) TableName() string {
	return "t_menu_permission"
}

const (
	PermissionDenied  = 0
	PermissionGranted = 1
)

// GrantReq 授权/回收请求
type GrantReq struct {
	UserId string `json:"userId"`
	MenuId uint64 `json:"menuId"`
}

// BulkGrantReq 批量授权请求
type BulkGrantReq struct {
	UserId  string   `json:"userId"`
	MenuIds []uint64 `json:"menuIds"`
}
