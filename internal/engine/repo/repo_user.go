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
	"fmt"
	"strings"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/pkg/ctx"
	"gorm.io/gorm"
)

// Org kind to denormalized user column.
var orgKindColumn = map[string]string{
	model.OrgKindGroup:        "group_no",
	model.OrgKindCorporation:  "corp_no",
	model.OrgKindHeadquarters: "headq_no",
	model.OrgKindTeam:         "team_no",
}

type IUserRepository interface {
	GetByUserId(ctx context.Context, userId string) (*model.User, error)
	GetByLoginId(ctx context.Context, loginId string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, userId string) error
	ExistsLoginId(ctx context.Context, loginId, excludeUserId string) (bool, error)
	ExistsEmail(ctx context.Context, email, excludeUserId string) (bool, error)
	ListUserIdsByOrg(ctx context.Context, kind string, orgIds []uint64, search, role string) ([]string, error)
	GetUsersByUserIds(ctx context.Context, userIds []string) ([]model.User, error)
}

type UserRepo struct {
	Ctx *ctx.Context
}

func NewUserRepo(appCtx *ctx.Context) IUserRepository {
	return &UserRepo{
		Ctx: appCtx,
	}
}

// GetByUserId 根据用户ID获取用户
func (r *UserRepo) GetByUserId(c context.Context, userId string) (*model.User, error) {
	var user model.User
	err := r.Ctx.DB.WithContext(c).Where("user_id = ?", userId).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("user %s", userId)
		}
		return nil, err
	}
	return &user, nil
}

// GetByLoginId 根据登录名获取用户，大小写不敏感
func (r *UserRepo) GetByLoginId(c context.Context, loginId string) (*model.User, error) {
	var user model.User
	err := r.Ctx.DB.WithContext(c).
		Where("login_id = ?", strings.ToLower(loginId)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("user login %s", loginId)
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *UserRepo) Create(c context.Context, user *model.User) error {
	err := r.Ctx.DB.WithContext(c).Create(user).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflictf("user login %s", user.LoginId)
	}
	return err
}

// Update 更新用户
func (r *UserRepo) Update(c context.Context, user *model.User) error {
	err := r.Ctx.DB.WithContext(c).Save(user).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.Conflictf("user login %s", user.LoginId)
	}
	return err
}

// Delete 删除用户
func (r *UserRepo) Delete(c context.Context, userId string) error {
	result := r.Ctx.DB.WithContext(c).Where("user_id = ?", userId).Delete(&model.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("user %s", userId)
	}
	return nil
}

// ExistsLoginId 登录名是否已占用，excludeUserId 非空时排除自身
func (r *UserRepo) ExistsLoginId(c context.Context, loginId, excludeUserId string) (bool, error) {
	query := r.Ctx.DB.WithContext(c).Model(&model.User{}).
		Where("login_id = ?", strings.ToLower(loginId))
	if excludeUserId != "" {
		query = query.Where("user_id <> ?", excludeUserId)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// ExistsEmail 邮箱是否已占用
func (r *UserRepo) ExistsEmail(c context.Context, email, excludeUserId string) (bool, error) {
	query := r.Ctx.DB.WithContext(c).Model(&model.User{}).
		Where("email = ?", email)
	if excludeUserId != "" {
		query = query.Where("user_id <> ?", excludeUserId)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// ListUserIdsByOrg 按单一层级列取用户ID集合，过滤条件与列表/计数共用
// 层级间的并集与去重在 service 层完成
func (r *UserRepo) ListUserIdsByOrg(c context.Context, kind string, orgIds []uint64, search, role string) ([]string, error) {
	if len(orgIds) == 0 {
		return nil, nil
	}
	column, ok := orgKindColumn[kind]
	if !ok {
		return nil, errs.Structuralf("unknown org kind %s", kind)
	}

	query := r.Ctx.DB.WithContext(c).Model(&model.User{}).
		Where(fmt.Sprintf("%s IN ?", column), orgIds)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("login_id LIKE ? OR username LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var userIds []string
	err := query.Pluck("user_id", &userIds).Error
	return userIds, err
}

// GetUsersByUserIds 批量取用户记录
func (r *UserRepo) GetUsersByUserIds(c context.Context, userIds []string) ([]model.User, error) {
	if len(userIds) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	err := r.Ctx.DB.WithContext(c).Where("user_id IN ?", userIds).Find(&users).Error
	return users, err
}
