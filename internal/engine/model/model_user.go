package model

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:19
 * @file: model_user.go
 * @description: user model
 */

// User 用户表
// login_id 大小写不敏感唯一（落库前转小写），email 唯一
// 组织列中最细粒度的一个为权威，粗粒度列为查询而冗余，随权威链同步
type User struct {
	BaseModel
	UserId   string `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	LoginId  string `gorm:"column:login_id;not null;uniqueIndex" json:"loginId"`
	Username string `gorm:"column:username" json:"username"`
	Password string `gorm:"column:password" json:"-"`
	Email    string `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Role     string `gorm:"column:role;default:viewer" json:"role"` // admin / operator / viewer
	GroupNo  uint64 `gorm:"column:group_no;index;default:0" json:"groupNo"`
	CorpNo   uint64 `gorm:"column:corp_no;index;default:0" json:"corpNo"`
	HeadqNo  uint64 `gorm:"column:headq_no;index;default:0" json:"headqNo"`
	TeamNo   uint64 `gorm:"column:team_no;index;default:0" json:"teamNo"`
	IsActive int    `gorm:"column:is_active;default:1" json:"isActive"` // 0: disabled, 1: enabled
}

func (User) TableName() string {
	return "t_user"
}

const (
	UserActive   = 1
	UserInactive = 0
)

// UserInfo 对外的用户视图
type UserInfo struct {
	UserId   string `json:"userId"`
	LoginId  string `json:"loginId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	GroupNo  uint64 `json:"groupNo"`
	CorpNo   uint64 `json:"corpNo"`
	HeadqNo  uint64 `json:"headqNo"`
	TeamNo   uint64 `json:"teamNo"`
}

// Info 剥离凭证后的对外视图
func (u *User) Info() UserInfo {
	return UserInfo{
		UserId:   u.UserId,
		LoginId:  u.LoginId,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		GroupNo:  u.GroupNo,
		CorpNo:   u.CorpNo,
		HeadqNo:  u.HeadqNo,
		TeamNo:   u.TeamNo,
	}
}

// CreateUserReq 创建用户请求
type CreateUserReq struct {
	LoginId  string `json:"loginId"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	OrgNo    uint64 `json:"orgNo"` // 权威组织单元，0 表示不挂载
}

// UpdateUserReq 更新用户请求
type UpdateUserReq struct {
	LoginId  *string `json:"loginId"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// Login 登录请求
type Login struct {
	LoginId  string `json:"loginId"`
	Password string `json:"password"`
}

// LoginResp 登录响应
type LoginResp struct {
	UserInfo UserInfo `json:"userInfo"`
	Token    string   `json:"token"`
	ExpireAt int64    `json:"expireAt"`
}

// HierarchyFilter 组织层级过滤集
// 四个集合按层级做析取：用户的组织链与任一集合相交即命中
type HierarchyFilter struct {
	GroupIds []uint64 `json:"groupIds"`
	CorpIds  []uint64 `json:"corpIds"`
	HeadqIds []uint64 `json:"headqIds"`
	TeamIds  []uint64 `json:"teamIds"`
	Search   string   `json:"search"`
	Role     string   `json:"role"`
}

// UserPage 分页结果
type UserPage struct {
	Total int64      `json:"total"`
	Items []UserInfo `json:"items"`
}
