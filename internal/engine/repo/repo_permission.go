package repo

import (
	"context"
	"errors"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/ctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/11
 * @file: repo_permission.go
 * @description: 用户-菜单授权仓库
 */

type IPermissionRepository interface {
	Upsert(ctx context.Context, userId string, menuId uint64, granted int) error
	BulkUpsert(ctx context.Context, userId string, menuIds []uint64, granted int) error
	IsGranted(ctx context.Context, userId string, menuId uint64) (bool, error)
	ListMenuIdsByUser(ctx context.Context, userId string) ([]uint64, error)
	ListUserIdsByMenu(ctx context.Context, menuId uint64) ([]string, error)
	ClearByUser(ctx context.Context, userId string) error
}

type PermissionRepo struct {
	Ctx *ctx.Context
}

func NewPermissionRepo(appCtx *ctx.Context) IPermissionRepository {
	return &PermissionRepo{
		Ctx: appCtx,
	}
}

var permissionConflictColumns = []clause.Column{{Name: "user_id"}, {Name: "menu_id"}}

// Upsert 写入或覆盖一条授权记录
func (r *PermissionRepo) Upsert(c context.Context, userId string, menuId uint64, granted int) error {
	record := &model.MenuPermission{
		UserId:  userId,
		MenuId:  menuId,
		Granted: granted,
	}
	return r.Ctx.DB.WithContext(c).Clauses(clause.OnConflict{
		Columns:   permissionConflictColumns,
		DoUpdates: clause.AssignmentColumns([]string{"granted"}),
	}).Create(record).Error
}

// BulkUpsert 单事务批量写入，子树授权走这里
func (r *PermissionRepo) BulkUpsert(c context.Context, userId string, menuIds []uint64, granted int) error {
	if len(menuIds) == 0 {
		return nil
	}
	records := make([]model.MenuPermission, 0, len(menuIds))
	for _, menuId := range menuIds {
		records = append(records, model.MenuPermission{
			UserId:  userId,
			MenuId:  menuId,
			Granted: granted,
		})
	}
	return r.Ctx.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   permissionConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{"granted"}),
		}).Create(&records).Error
	})
}

// IsGranted 单行读取，默认拒绝：无记录与 granted=0 都返回 false
func (r *PermissionRepo) IsGranted(c context.Context, userId string, menuId uint64) (bool, error) {
	var record model.MenuPermission
	err := r.Ctx.DB.WithContext(c).
		Where("user_id = ? AND menu_id = ?", userId, menuId).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Granted == model.PermissionGranted, nil
}

// ListMenuIdsByUser 用户的已授权菜单集合
func (r *PermissionRepo) ListMenuIdsByUser(c context.Context, userId string) ([]uint64, error) {
	var menuIds []uint64
	err := r.Ctx.DB.WithContext(c).Model(&model.MenuPermission{}).
		Where("user_id = ? AND granted = ?", userId, model.PermissionGranted).
		Order("menu_id ASC").
		Pluck("menu_id", &menuIds).Error
	return menuIds, err
}

// ListUserIdsByMenu 菜单的已授权用户集合
func (r *PermissionRepo) ListUserIdsByMenu(c context.Context, menuId uint64) ([]string, error) {
	var userIds []string
	err := r.Ctx.DB.WithContext(c).Model(&model.MenuPermission{}).
		Where("menu_id = ? AND granted = ?", menuId, model.PermissionGranted).
		Order("user_id ASC").
		Pluck("user_id", &userIds).Error
	return userIds, err
}

// ClearByUser 移除用户的全部授权记录
// 单条 DELETE 语句，并发读要么看到全部旧记录要么一条不剩
func (r *PermissionRepo) ClearByUser(c context.Context, userId string) error {
	return r.Ctx.DB.WithContext(c).
		Where("user_id = ?", userId).
		Delete(&model.MenuPermission{}).Error
}
