// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// Menu 菜单表
// 每个节点即一个受守卫的资源，page_id 是守卫声明使用的稳定键
type Menu struct {
	BaseModel
	PageId    string  `gorm:"column:page_id;not null;uniqueIndex" json:"pageId"` // 资源稳定标识
	ParentId  *uint64 `gorm:"column:parent_id;index" json:"parentId"`            // 父菜单ID（为空表示顶级菜单）
	Name      string  `gorm:"column:name;not null" json:"name"`                  // 菜单名称
	Url       string  `gorm:"column:url" json:"url"`                             // 菜单路径
	Level     int     `gorm:"column:level;default:0" json:"level"`               // 层级深度，根为0
	SortOrder int     `gorm:"column:sort_order;default:0" json:"sortOrder"`      // 同级排序（数值越小越靠前）
	IsActive  int     `gorm:"column:is_active;default:1" json:"isActive"`        // 是否启用：0-禁用，1-启用
	IsVisible int     `gorm:"column:is_visible;default:1" json:"isVisible"`      // 是否可见：0-隐藏，1-显示
}

func (Menu) TableName() string {
	return "t_menu"
}

// 菜单可见性常量
const (
	MenuVisible   = 1 // 可见
	MenuInvisible = 0 // 不可见
)

// 菜单启用状态常量
const (
	MenuActive   = 1 // 启用
	MenuInactive = 0 // 禁用
)

// MenuDTO 菜单树节点
type MenuDTO struct {
	Id        uint64    `json:"id"`
	PageId    string    `json:"pageId"`
	ParentId  *uint64   `json:"parentId"`
	Name      string    `json:"name"`
	Url       string    `json:"url"`
	Level     int       `json:"level"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	IsVisible bool      `json:"isVisible"`
	Children  []MenuDTO `json:"children"`
}

// CreateMenuReq 创建菜单请求
type CreateMenuReq struct {
	PageId    string  `json:"pageId"`
	ParentId  *uint64 `json:"parentId"`
	Name      string  `json:"name"`
	Url       string  `json:"url"`
	SortOrder int     `json:"sortOrder"`
	IsActive  *int    `json:"isActive"`
	IsVisible *int    `json:"isVisible"`
}

// UpdateMenuReq 更新菜单请求
type UpdateMenuReq struct {
	PageId    *string `json:"pageId"`
	ParentId  *uint64 `json:"parentId"`
	Name      *string `json:"name"`
	Url       *string `json:"url"`
	SortOrder *int    `json:"sortOrder"`
	IsVisible *int    `json:"isVisible"`
}

// ReorderMenuReq 同级排序请求，ids 为期望的先后顺序
type ReorderMenuReq struct {
	ParentId *uint64  `json:"parentId"`
	Ids      []uint64 `json:"ids"`
}
