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
	"strconv"
	"time"

	"github.com/go-atrium/atrium/internal/engine/consts"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/redis/go-redis/v9"
)

// 授权集合缓存的过期时间，读侧兜底，写侧主动失效
const userMenuCacheTTL = 5 * time.Minute

// PermissionService 授权评估服务
// 判定是二元的：只有显式 granted=1 的记录放行，其余一律拒绝
// 父节点的授权不下传子节点，子树授权由调用方展开菜单子树后走 BulkGrant
type PermissionService struct {
	permRepo repo.IPermissionRepository
	rdb      *redis.Client
}

func NewPermissionService(permRepo repo.IPermissionRepository, rdb *redis.Client) *PermissionService {
	return &PermissionService{
		permRepo: permRepo,
		rdb:      rdb,
	}
}

// Grant 授权一个 (用户, 菜单) 对
func (s *PermissionService) Grant(ctx context.Context, userId string, menuId uint64) error {
	if err := s.permRepo.Upsert(ctx, userId, menuId, model.PermissionGranted); err != nil {
		return err
	}
	s.invalidate(ctx, userId)
	return nil
}

// Revoke 回收授权，幂等：记录不存在时落一条显式拒绝
func (s *PermissionService) Revoke(ctx context.Context, userId string, menuId uint64) error {
	if err := s.permRepo.Upsert(ctx, userId, menuId, model.PermissionDenied); err != nil {
		return err
	}
	s.invalidate(ctx, userId)
	return nil
}

// BulkGrant 批量授权
func (s *PermissionService) BulkGrant(ctx context.Context, userId string, menuIds []uint64) error {
	if err := s.permRepo.BulkUpsert(ctx, userId, menuIds, model.PermissionGranted); err != nil {
		return err
	}
	s.invalidate(ctx, userId)
	return nil
}

// IsGranted 授权判定，直读数据库（权威）
func (s *PermissionService) IsGranted(ctx context.Context, userId string, menuId uint64) (bool, error) {
	return s.permRepo.IsGranted(ctx, userId, menuId)
}

// ListGrantedMenus 用户的已授权菜单集合，优先走缓存
func (s *PermissionService) ListGrantedMenus(ctx context.Context, userId string) ([]uint64, error) {
	if cached, ok := s.cachedMenus(ctx, userId); ok {
		return cached, nil
	}

	menuIds, err := s.permRepo.ListMenuIdsByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	s.cacheMenus(ctx, userId, menuIds)
	return menuIds, nil
}

// ListGrantedActors 菜单的已授权用户集合
func (s *PermissionService) ListGrantedActors(ctx context.Context, menuId uint64) ([]string, error) {
	return s.permRepo.ListUserIdsByMenu(ctx, menuId)
}

// ClearAll 移除用户的全部授权（如停用账号时）
func (s *PermissionService) ClearAll(ctx context.Context, userId string) error {
	if err := s.permRepo.ClearByUser(ctx, userId); err != nil {
		return err
	}
	s.invalidate(ctx, userId)
	return nil
}

// cachedMenus 读缓存，任何缓存故障都当作未命中
func (s *PermissionService) cachedMenus(ctx context.Context, userId string) ([]uint64, bool) {
	if s.rdb == nil {
		return nil, false
	}
	values, err := s.rdb.SMembers(ctx, consts.UserMenuKey+userId).Result()
	if err != nil || len(values) == 0 {
		return nil, false
	}
	menuIds := make([]uint64, 0, len(values))
	for _, v := range values {
		if v == "-" { // 空集哨兵
			continue
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, false
		}
		menuIds = append(menuIds, id)
	}
	// SMembers 返回顺序不定，对齐 DB 路径的 menu_id 升序
	sort.Slice(menuIds, func(i, j int) bool { return menuIds[i] < menuIds[j] })
	return menuIds, true
}

func (s *PermissionService) cacheMenus(ctx context.Context, userId string, menuIds []uint64) {
	if s.rdb == nil {
		return
	}
	key := consts.UserMenuKey + userId
	members := make([]any, 0, len(menuIds)+1)
	// 空集写哨兵成员，以便与缓存未命中区分
	members = append(members, "-")
	for _, id := range menuIds {
		members = append(members, strconv.FormatUint(id, 10))
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, userMenuCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warnw("failed to cache granted menus", "userId", userId, "error", err)
	}
}

// invalidate 授权变更后丢弃缓存
func (s *PermissionService) invalidate(ctx context.Context, userId string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, consts.UserMenuKey+userId).Err(); err != nil {
		log.Warnw("failed to invalidate granted menus cache", "userId", userId, "error", err)
	}
}
