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

package repo

import (
	"context"
	"errors"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/ctx"
	"gorm.io/gorm"
)

type IMenuRepository interface {
	GetMenu(ctx context.Context, id uint64) (*model.Menu, error)
	GetMenuByPageId(ctx context.Context, pageId string) (*model.Menu, error)
	GetAllMenus(ctx context.Context) ([]model.Menu, error)
	GetActiveMenus(ctx context.Context) ([]model.Menu, error)
	GetMenusByLevel(ctx context.Context, level int) ([]model.Menu, error)
	GetMenusByParentId(ctx context.Context, parentId *uint64) ([]model.Menu, error)
	CreateMenu(ctx context.Context, menu *model.Menu) error
	UpdateMenu(ctx context.Context, menu *model.Menu) error
	SetActive(ctx context.Context, id uint64, active int) error
	UpdateSortOrders(ctx context.Context, orders map[uint64]int) error
	UpdateLevels(ctx context.Context, levels map[uint64]int) error
	DeleteMenusWithGrants(ctx context.Context, ids []uint64) error
}

type MenuRepo struct {
	Ctx *ctx.Context
}

func NewMenuRepo(appCtx *ctx.Context) IMenuRepository {
	return &MenuRepo{
		Ctx: appCtx,
	}
}

// GetMenu 获取菜单
func (r *MenuRepo) GetMenu(c context.Context, id uint64) (*model.Menu, error) {
	var menu model.Menu
	err := r.Ctx.DB.WithContext(c).Where("id = ?", id).First(&menu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("menu %d", id)
		}
		return nil, err
	}
	return &menu, nil
}

// GetMenuByPageId 根据 page_id 获取菜单
func (r *MenuRepo) GetMenuByPageId(c context.Context, pageId string) (*model.Menu, error) {
	var menu model.Menu
	err := r.Ctx.DB.WithContext(c).Where("page_id = ?", pageId).First(&menu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("menu page %s", pageId)
		}
		return nil, err
	}
	return &menu, nil
}

// GetAllMenus 获取全部菜单
func (r *MenuRepo) GetAllMenus(c context.Context) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.Ctx.DB.WithContext(c).
		Order("sort_order ASC, id ASC").Find(&menus).Error
	return menus, err
}

// GetActiveMenus 获取启用且可见的菜单
func (r *MenuRepo) GetActiveMenus(c context.Context) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.Ctx.DB.WithContext(c).
		Where("is_active = ? AND is_visible = ?", model.MenuActive, model.MenuVisible).
		Order("sort_order ASC, id ASC").Find(&menus).Error
	return menus, err
}

// GetMenusByLevel 按层级获取菜单
func (r *MenuRepo) GetMenusByLevel(c context.Context, level int) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.Ctx.DB.WithContext(c).
		Where("level = ?", level).
		Order("sort_order ASC, id ASC").Find(&menus).Error
	return menus, err
}

// GetMenusByParentId 根据父菜单ID获取子菜单，parentId 为空时返回根菜单
func (r *MenuRepo) GetMenusByParentId(c context.Context, parentId *uint64) ([]model.Menu, error) {
	var menus []model.Menu
	query := r.Ctx.DB.WithContext(c)
	if parentId == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentId)
	}
	err := query.Order("sort_order ASC, id ASC").Find(&menus).Error
	return menus, err
}

// CreateMenu 创建菜单
func (r *MenuRepo) CreateMenu(c context.Context, menu *model.Menu) error {
	err := r.Ctx.DB.WithContext(c).Create(menu).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflictf("menu page %s", menu.PageId)
	}
	return err
}

// UpdateMenu 更新菜单
func (r *MenuRepo) UpdateMenu(c context.Context, menu *model.Menu) error {
	err := r.Ctx.DB.WithContext(c).Save(menu).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflictf("menu page %s", menu.PageId)
	}
	return err
}

// SetActive 设置启用状态
func (r *MenuRepo) SetActive(c context.Context, id uint64, active int) error {
	result := r.Ctx.DB.WithContext(c).Model(&model.Menu{}).
		Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("menu %d", id)
	}
	return nil
}

// UpdateSortOrders 批量更新同级排序，单事务提交
func (r *MenuRepo) UpdateSortOrders(c context.Context, orders map[uint64]int) error {
	return r.Ctx.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			if err := tx.Model(&model.Menu{}).
				Where("id = ?", id).Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateLevels 批量更新层级，换父后整棵子树一并下推，单事务提交
func (r *MenuRepo) UpdateLevels(c context.Context, levels map[uint64]int) error {
	return r.Ctx.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		for id, level := range levels {
			if err := tx.Model(&model.Menu{}).
				Where("id = ?", id).Update("level", level).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteMenusWithGrants 删除菜单及其全部授权记录
// 级联删除策略：调用方传入整棵子树的ID集合，单事务保证读者不会看到悬挂节点
func (r *MenuRepo) DeleteMenusWithGrants(c context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.Ctx.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id IN ?", ids).Delete(&model.MenuPermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Menu{}).Error
	})
}
