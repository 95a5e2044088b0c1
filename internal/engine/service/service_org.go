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

package service

import (
	"context"
	"sort"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
)

// OrgService 组织层级服务
// 层级秩严格递减：group > corporation > headquarters > team，
// 建边时即校验，坏边不入库
type OrgService struct {
	orgRepo  repo.IOrgRepository
	userRepo repo.IUserRepository
}

func NewOrgService(orgRepo repo.IOrgRepository, userRepo repo.IUserRepository) *OrgService {
	return &OrgService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// GetUnit 取单个组织单元
func (s *OrgService) GetUnit(ctx context.Context, id uint64) (*model.OrgUnit, error) {
	return s.orgRepo.GetUnit(ctx, id)
}

// ListUnits 全部组织单元
func (s *OrgService) ListUnits(ctx context.Context) ([]model.OrgUnit, error) {
	return s.orgRepo.GetAllUnits(ctx)
}

// CreateUnit 创建组织单元，校验 kind 与父边
func (s *OrgService) CreateUnit(ctx context.Context, req *model.CreateOrgUnitReq) (*model.OrgUnit, error) {
	rank, ok := model.OrgKindRank[req.Kind]
	if !ok {
		return nil, errs.Structuralf("unknown org kind %s", req.Kind)
	}
	if req.Name == "" {
		return nil, errs.Structuralf("org unit name is required")
	}

	if req.ParentId != nil {
		parent, err := s.orgRepo.GetUnit(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		if model.OrgKindRank[parent.Kind] >= rank {
			return nil, errs.Structuralf("org kind %s cannot be a child of %s", req.Kind, parent.Kind)
		}
	}

	unit := &model.OrgUnit{
		Kind:     req.Kind,
		Name:     req.Name,
		ParentId: req.ParentId,
	}
	if err := s.orgRepo.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// UpdateUnit 更新组织单元，换父时重新校验边
func (s *OrgService) UpdateUnit(ctx context.Context, id uint64, req *model.UpdateOrgUnitReq) (*model.OrgUnit, error) {
	unit, err := s.orgRepo.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		unit.Name = *req.Name
	}
	if req.ParentId != nil {
		if *req.ParentId == id {
			return nil, errs.Structuralf("org unit %d cannot be its own parent", id)
		}
		parent, err := s.orgRepo.GetUnit(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		if model.OrgKindRank[parent.Kind] >= model.OrgKindRank[unit.Kind] {
			return nil, errs.Structuralf("org kind %s cannot be a child of %s", unit.Kind, parent.Kind)
		}
		unit.ParentId = req.ParentId
	}
	if err := s.orgRepo.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit 删除组织单元，存在子单元时拒绝
func (s *OrgService) DeleteUnit(ctx context.Context, id uint64) error {
	count, err := s.orgRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errs.Structuralf("org unit %d has %d children", id, count)
	}
	return s.orgRepo.DeleteUnit(ctx, id)
}

// ResolveDescendantUnits 解析以 unitId 为根的全部后代单元ID（含自身）
func (s *OrgService) ResolveDescendantUnits(ctx context.Context, unitId uint64) ([]uint64, error) {
	units, err := s.orgRepo.GetAllUnits(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uint64][]uint64, len(units))
	exists := make(map[uint64]bool, len(units))
	for i := range units {
		exists[units[i].ID] = true
	}
	for i := range units {
		if units[i].ParentId != nil {
			children[*units[i].ParentId] = append(children[*units[i].ParentId], units[i].ID)
		}
	}
	if !exists[unitId] {
		return nil, errs.NotFoundf("org unit %d", unitId)
	}

	var ids []uint64
	visited := make(map[uint64]bool)
	queue := []uint64{unitId}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			return nil, errs.Structuralf("cycle detected at org unit %d", id)
		}
		visited[id] = true
		ids = append(ids, id)
		queue = append(queue, children[id]...)
	}
	return ids, nil
}

// AncestorChain 自 unitId 向上到根的单元链（含自身），用于冗余列同步
func (s *OrgService) AncestorChain(ctx context.Context, unitId uint64) ([]model.OrgUnit, error) {
	units, err := s.orgRepo.GetAllUnits(ctx)
	if err != nil {
		return nil, err
	}
	byId := make(map[uint64]*model.OrgUnit, len(units))
	for i := range units {
		byId[units[i].ID] = &units[i]
	}

	var chain []model.OrgUnit
	visited := make(map[uint64]bool)
	current, ok := byId[unitId]
	if !ok {
		return nil, errs.NotFoundf("org unit %d", unitId)
	}
	for current != nil {
		if visited[current.ID] {
			return nil, errs.Structuralf("cycle detected at org unit %d", current.ID)
		}
		visited[current.ID] = true
		chain = append(chain, *current)
		if current.ParentId == nil {
			break
		}
		current = byId[*current.ParentId]
	}
	return chain, nil
}

// resolveActorIds 层级过滤的核心：逐层取用户ID集合做并集去重
// 同一用户命中多个层级也只出现一次
func (s *OrgService) resolveActorIds(ctx context.Context, filter *model.HierarchyFilter) ([]string, error) {
	union := make(map[string]struct{})

	kinds := []struct {
		kind string
		ids  []uint64
	}{
		{model.OrgKindGroup, filter.GroupIds},
		{model.OrgKindCorporation, filter.CorpIds},
		{model.OrgKindHeadquarters, filter.HeadqIds},
		{model.OrgKindTeam, filter.TeamIds},
	}
	for _, k := range kinds {
		userIds, err := s.userRepo.ListUserIdsByOrg(ctx, k.kind, k.ids, filter.Search, filter.Role)
		if err != nil {
			return nil, err
		}
		for _, userId := range userIds {
			union[userId] = struct{}{}
		}
	}

	result := make([]string, 0, len(union))
	for userId := range union {
		result = append(result, userId)
	}
	sort.Strings(result)
	return result, nil
}

// CountActorsUnderHierarchy 过滤语义与 ListActorsUnderHierarchy 完全一致
func (s *OrgService) CountActorsUnderHierarchy(ctx context.Context, filter *model.HierarchyFilter) (int64, error) {
	actorIds, err := s.resolveActorIds(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(actorIds)), nil
}

// ListActorsUnderHierarchy 层级范围内分页列出用户
// offset 从0起；排序按 userId 升序，分页与总数基于同一个去重集合
func (s *OrgService) ListActorsUnderHierarchy(ctx context.Context, filter *model.HierarchyFilter, offset, limit int) (*model.UserPage, error) {
	actorIds, err := s.resolveActorIds(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &model.UserPage{
		Total: int64(len(actorIds)),
		Items: []model.UserInfo{},
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if offset >= len(actorIds) {
		return page, nil
	}
	end := offset + limit
	if end > len(actorIds) {
		end = len(actorIds)
	}
	pageIds := actorIds[offset:end]

	users, err := s.userRepo.GetUsersByUserIds(ctx, pageIds)
	if err != nil {
		return nil, err
	}
	byId := make(map[string]*model.User, len(users))
	for i := range users {
		byId[users[i].UserId] = &users[i]
	}
	// 保持去重集合的顺序
	for _, userId := range pageIds {
		if u, ok := byId[userId]; ok {
			page.Items = append(page.Items, u.Info())
		}
	}
	return page, nil
}
