package repo

import (
	"context"
	"errors"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/ctx"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/11
 * @file: repo_org.go
 * @description: 组织单元仓库
 */

type IOrgRepository interface {
	GetUnit(ctx context.Context, id uint64) (*model.OrgUnit, error)
	GetAllUnits(ctx context.Context) ([]model.OrgUnit, error)
	GetChildren(ctx context.Context, parentId uint64) ([]model.OrgUnit, error)
	CreateUnit(ctx context.Context, unit *model.OrgUnit) error
	UpdateUnit(ctx context.Context, unit *model.OrgUnit) error
	DeleteUnit(ctx context.Context, id uint64) error
	CountChildren(ctx context.Context, id uint64) (int64, error)
}

type OrgRepo struct {
	Ctx *ctx.Context
}

func NewOrgRepo(appCtx *ctx.Context) IOrgRepository {
	return &OrgRepo{
		Ctx: appCtx,
	}
}

// GetUnit 获取组织单元
func (r *OrgRepo) GetUnit(c context.Context, id uint64) (*model.OrgUnit, error) {
	var unit model.OrgUnit
	err := r.Ctx.DB.WithContext(c).Where("id = ?", id).First(&unit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("org unit %d", id)
		}
		return nil, err
	}
	return &unit, nil
}

// GetAllUnits 获取全部组织单元
func (r *OrgRepo) GetAllUnits(c context.Context) ([]model.OrgUnit, error) {
	var units []model.OrgUnit
	err := r.Ctx.DB.WithContext(c).Order("id ASC").Find(&units).Error
	return units, err
}

// GetChildren 获取直接子单元
func (r *OrgRepo) GetChildren(c context.Context, parentId uint64) ([]model.OrgUnit, error) {
	var units []model.OrgUnit
	err := r.Ctx.DB.WithContext(c).Where("parent_id = ?", parentId).
		Order("id ASC").Find(&units).Error
	return units, err
}

// CreateUnit 创建组织单元
func (r *OrgRepo) CreateUnit(c context.Context, unit *model.OrgUnit) error {
	return r.Ctx.DB.WithContext(c).Create(unit).Error
}

// UpdateUnit 更新组织单元
func (r *OrgRepo) UpdateUnit(c context.Context, unit *model.OrgUnit) error {
	return r.Ctx.DB.WithContext(c).Save(unit).Error
}

// DeleteUnit 删除组织单元
func (r *OrgRepo) DeleteUnit(c context.Context, id uint64) error {
	result := r.Ctx.DB.WithContext(c).Where("id = ?", id).Delete(&model.OrgUnit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("org unit %d", id)
	}
	return nil
}

// CountChildren 统计直接子单元数
func (r *OrgRepo) CountChildren(c context.Context, id uint64) (int64, error) {
	var count int64
	err := r.Ctx.DB.WithContext(c).Model(&model.OrgUnit{}).
		Where("parent_id = ?", id).Count(&count).Error
	return count, err
}
