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

// 组织单元类型，自粗到细：group > corporation > headquarters > team
const (
	OrgKindGroup        = "group"
	OrgKindCorporation  = "corporation"
	OrgKindHeadquarters = "headquarters"
	OrgKindTeam         = "team"
)

// OrgKindRank 层级秩，秩小者为祖先
var OrgKindRank = map[string]int{
	OrgKindGroup:        0,
	OrgKindCorporation:  1,
	OrgKindHeadquarters: 2,
	OrgKindTeam:         3,
}

// OrgUnit 组织单元表
// 父节点的 kind 秩必须严格小于子节点（祖先必须更粗粒度）
type OrgUnit struct {
	BaseModel
	Kind     string  `gorm:"column:kind;not null;index" json:"kind"`
	Name     string  `gorm:"column:name;not null" json:"name"`
	ParentId *uint64 `gorm:"column:parent_id;index" json:"parentId"`
}

func (OrgUnit) TableName() string {
	return "t_org_unit"
}

// CreateOrgUnitReq 创建组织单元请求
type CreateOrgUnitReq struct {
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	ParentId *uint64 `json:"parentId"`
}

// UpdateOrgUnitReq 更新组织单元请求
type UpdateOrgUnitReq struct {
	Name     *string `json:"name"`
	ParentId *uint64 `json:"parentId"`
}
