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
	"github.com/go-atrium/atrium/pkg/log"
)

// MenuService 菜单目录服务
// 树的物化是显式图算法：一次性取全量节点，建 parent→children 索引，
// 迭代下推并用访达集拒绝成环，不依赖存储侧的递归查询
type MenuService struct {
	menuRepo repo.IMenuRepository
}

func NewMenuService(menuRepo repo.IMenuRepository) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
	}
}

// GetMenu 按ID取单个菜单
func (s *MenuService) GetMenu(ctx context.Context, id uint64) (*model.Menu, error) {
	return s.menuRepo.GetMenu(ctx, id)
}

// GetMenuByPageId 按 page_id 取单个菜单
func (s *MenuService) GetMenuByPageId(ctx context.Context, pageId string) (*model.Menu, error) {
	return s.menuRepo.GetMenuByPageId(ctx, pageId)
}

// ListActive 启用且可见的菜单，sort_order ASC, id ASC
func (s *MenuService) ListActive(ctx context.Context) ([]model.Menu, error) {
	return s.menuRepo.GetActiveMenus(ctx)
}

// ListByLevel 按层级列出菜单
func (s *MenuService) ListByLevel(ctx context.Context, level int) ([]model.Menu, error) {
	return s.menuRepo.GetMenusByLevel(ctx, level)
}

// ListChildren 直接子菜单
func (s *MenuService) ListChildren(ctx context.Context, parentId *uint64) ([]model.Menu, error) {
	return s.menuRepo.GetMenusByParentId(ctx, parentId)
}

// CreateMenu 创建菜单，level 由父节点推导
func (s *MenuService) CreateMenu(ctx context.Context, req *model.CreateMenuReq) (*model.Menu, error) {
	if req.PageId == "" || req.Name == "" {
		return nil, errs.Structuralf("pageId and name are required")
	}

	level := 0
	if req.ParentId != nil {
		parent, err := s.menuRepo.GetMenu(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		level = parent.Level + 1
	}

	menu := &model.Menu{
		PageId:    req.PageId,
		ParentId:  req.ParentId,
		Name:      req.Name,
		Url:       req.Url,
		Level:     level,
		SortOrder: req.SortOrder,
		IsActive:  model.MenuActive,
		IsVisible: model.MenuVisible,
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if req.IsVisible != nil {
		menu.IsVisible = *req.IsVisible
	}

	if err := s.menuRepo.CreateMenu(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// UpdateMenu 更新菜单，换父时校验不会成环并重推整棵子树的 level
func (s *MenuService) UpdateMenu(ctx context.Context, id uint64, req *model.UpdateMenuReq) (*model.Menu, error) {
	menu, err := s.menuRepo.GetMenu(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PageId != nil {
		menu.PageId = *req.PageId
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Url != nil {
		menu.Url = *req.Url
	}
	if req.SortOrder != nil {
		menu.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		menu.IsVisible = *req.IsVisible
	}

	var descLevels map[uint64]int
	if req.ParentId != nil && (menu.ParentId == nil || *menu.ParentId != *req.ParentId) {
		if *req.ParentId == id {
			return nil, errs.Structuralf("menu %d cannot be its own parent", id)
		}
		all, err := s.menuRepo.GetAllMenus(ctx)
		if err != nil {
			return nil, err
		}
		if isDescendant(all, id, *req.ParentId) {
			return nil, errs.Structuralf("menu %d cannot be moved under its descendant %d", id, *req.ParentId)
		}
		parent, err := s.menuRepo.GetMenu(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		menu.ParentId = req.ParentId
		menu.Level = parent.Level + 1
		// 子树整体随迁：每条边都重推 level = 父级 + 1
		descLevels = subtreeLevels(all, id, menu.Level)
		delete(descLevels, id)
	}

	if err := s.menuRepo.UpdateMenu(ctx, menu); err != nil {
		return nil, err
	}
	if len(descLevels) > 0 {
		if err := s.menuRepo.UpdateLevels(ctx, descLevels); err != nil {
			return nil, err
		}
	}
	return menu, nil
}

// SetActive 设置启用状态
func (s *MenuService) SetActive(ctx context.Context, id uint64, active bool) error {
	value := model.MenuInactive
	if active {
		value = model.MenuActive
	}
	return s.menuRepo.SetActive(ctx, id, value)
}

// DeleteMenu 级联删除：整棵子树连同其全部授权记录一并移除
func (s *MenuService) DeleteMenu(ctx context.Context, id uint64) error {
	if _, err := s.menuRepo.GetMenu(ctx, id); err != nil {
		return err
	}
	all, err := s.menuRepo.GetAllMenus(ctx)
	if err != nil {
		return err
	}
	ids, err := subtreeIds(all, id)
	if err != nil {
		return err
	}
	log.Infow("cascade deleting menu subtree", "rootId", id, "count", len(ids))
	return s.menuRepo.DeleteMenusWithGrants(ctx, ids)
}

// Reorder 重排同级排序
// ids 给出期望顺序，未列出的兄弟保持原有相对顺序排在其后；序号从1起连续分配
func (s *MenuService) Reorder(ctx context.Context, req *model.ReorderMenuReq) error {
	siblings, err := s.menuRepo.GetMenusByParentId(ctx, req.ParentId)
	if err != nil {
		return err
	}

	byId := make(map[uint64]*model.Menu, len(siblings))
	for i := range siblings {
		byId[siblings[i].ID] = &siblings[i]
	}

	ordered := make([]uint64, 0, len(siblings))
	seen := make(map[uint64]bool, len(siblings))
	for _, id := range req.Ids {
		if _, ok := byId[id]; !ok {
			return errs.Structuralf("menu %d is not a child of the given parent", id)
		}
		if seen[id] {
			return errs.Structuralf("menu %d listed twice", id)
		}
		seen[id] = true
		ordered = append(ordered, id)
	}
	// 未点名的兄弟按当前 (sort_order, id) 追加
	for i := range siblings {
		if !seen[siblings[i].ID] {
			ordered = append(ordered, siblings[i].ID)
		}
	}

	orders := make(map[uint64]int, len(ordered))
	for i, id := range ordered {
		orders[id] = i + 1
	}
	return s.menuRepo.UpdateSortOrders(ctx, orders)
}

// GetFullTree 物化整棵菜单树
func (s *MenuService) GetFullTree(ctx context.Context) ([]model.MenuDTO, error) {
	menus, err := s.menuRepo.GetAllMenus(ctx)
	if err != nil {
		return nil, err
	}
	return buildTree(menus, nil)
}

// GetSubtree 物化以 menuId 为根的子树
func (s *MenuService) GetSubtree(ctx context.Context, menuId uint64) (*model.MenuDTO, error) {
	menus, err := s.menuRepo.GetAllMenus(ctx)
	if err != nil {
		return nil, err
	}
	roots, err := buildTree(menus, &menuId)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, errs.NotFoundf("menu %d", menuId)
	}
	return &roots[0], nil
}

// SubtreeIds 子树包含的全部菜单ID（含根），供批量授权使用
func (s *MenuService) SubtreeIds(ctx context.Context, menuId uint64) ([]uint64, error) {
	menus, err := s.menuRepo.GetAllMenus(ctx)
	if err != nil {
		return nil, err
	}
	return subtreeIds(menus, menuId)
}

// buildTree 把平面节点集物化为树
// rootId 非空时只物化该节点的子树；检测到环返回结构性错误
func buildTree(menus []model.Menu, rootId *uint64) ([]model.MenuDTO, error) {
	byId := make(map[uint64]*model.Menu, len(menus))
	children := make(map[uint64][]uint64, len(menus))
	var roots []uint64

	for i := range menus {
		byId[menus[i].ID] = &menus[i]
	}
	for i := range menus {
		m := &menus[i]
		switch {
		case m.ParentId == nil:
			roots = append(roots, m.ID)
		default:
			if _, ok := byId[*m.ParentId]; !ok {
				// 父节点缺失时按根处理，与目录被部分清理后的存量数据兼容
				log.Warnw("parent menu not found, treating as root", "menuId", m.ID, "parentId", *m.ParentId)
				roots = append(roots, m.ID)
				continue
			}
			children[*m.ParentId] = append(children[*m.ParentId], m.ID)
		}
	}

	sortByOrder := func(ids []uint64) {
		sort.Slice(ids, func(i, j int) bool {
			a, b := byId[ids[i]], byId[ids[j]]
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.ID < b.ID
		})
	}

	startIds := roots
	startLevel := func(id uint64) int { return 0 }
	if rootId != nil {
		if _, ok := byId[*rootId]; !ok {
			return nil, nil
		}
		startIds = []uint64{*rootId}
		startLevel = func(id uint64) int { return byId[id].Level }
	}
	sortByOrder(startIds)

	visited := make(map[uint64]bool, len(menus))

	var attach func(id uint64, level int) (model.MenuDTO, error)
	attach = func(id uint64, level int) (model.MenuDTO, error) {
		if visited[id] {
			return model.MenuDTO{}, errs.Structuralf("cycle detected at menu %d", id)
		}
		visited[id] = true

		m := byId[id]
		node := model.MenuDTO{
			Id:        m.ID,
			PageId:    m.PageId,
			ParentId:  m.ParentId,
			Name:      m.Name,
			Url:       m.Url,
			Level:     level,
			SortOrder: m.SortOrder,
			IsActive:  m.IsActive == model.MenuActive,
			IsVisible: m.IsVisible == model.MenuVisible,
			Children:  []model.MenuDTO{},
		}

		childIds := append([]uint64(nil), children[id]...)
		sortByOrder(childIds)
		for _, childId := range childIds {
			child, err := attach(childId, level+1)
			if err != nil {
				return model.MenuDTO{}, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil
	}

	result := make([]model.MenuDTO, 0, len(startIds))
	for _, id := range startIds {
		node, err := attach(id, startLevel(id))
		if err != nil {
			return nil, err
		}
		result = append(result, node)
	}

	// 整树物化时，未被访达的节点说明父图成环
	if rootId == nil && len(visited) != len(menus) {
		return nil, errs.Structuralf("cycle detected: %d of %d menus unreachable from roots",
			len(menus)-len(visited), len(menus))
	}

	return result, nil
}

// subtreeIds 迭代收集子树ID，带访达集防环
func subtreeIds(menus []model.Menu, rootId uint64) ([]uint64, error) {
	children := make(map[uint64][]uint64, len(menus))
	exists := make(map[uint64]bool, len(menus))
	for i := range menus {
		exists[menus[i].ID] = true
	}
	for i := range menus {
		if menus[i].ParentId != nil && exists[*menus[i].ParentId] {
			children[*menus[i].ParentId] = append(children[*menus[i].ParentId], menus[i].ID)
		}
	}
	if !exists[rootId] {
		return nil, errs.NotFoundf("menu %d", rootId)
	}

	var ids []uint64
	visited := make(map[uint64]bool)
	queue := []uint64{rootId}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			return nil, errs.Structuralf("cycle detected at menu %d", id)
		}
		visited[id] = true
		ids = append(ids, id)
		queue = append(queue, children[id]...)
	}
	return ids, nil
}

// subtreeLevels 从 rootLevel 起沿边推导子树各节点的 level
func subtreeLevels(menus []model.Menu, rootId uint64, rootLevel int) map[uint64]int {
	children := make(map[uint64][]uint64, len(menus))
	for i := range menus {
		if menus[i].ParentId != nil {
			children[*menus[i].ParentId] = append(children[*menus[i].ParentId], menus[i].ID)
		}
	}

	levels := make(map[uint64]int)
	type entry struct {
		id    uint64
		level int
	}
	queue := []entry{{rootId, rootLevel}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if _, ok := levels[e.id]; ok {
			continue
		}
		levels[e.id] = e.level
		for _, childId := range children[e.id] {
			queue = append(queue, entry{childId, e.level + 1})
		}
	}
	return levels
}

// isDescendant reports whether candidate lies in the subtree rooted at rootId.
func isDescendant(menus []model.Menu, rootId, candidate uint64) bool {
	ids, err := subtreeIds(menus, rootId)
	if err != nil {
		// 成环的存量数据按保守处理，禁止换父
		return true
	}
	for _, id := range ids {
		if id == candidate {
			return true
		}
	}
	return false
}
