package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
)

// 内存仓储，行为对齐真实实现：排序、not-found、级联删除

type fakeMenuRepo struct {
	menus  map[uint64]*model.Menu
	nextId uint64

	deletedWithGrants [][]uint64
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{menus: make(map[uint64]*model.Menu)}
}

func (f *fakeMenuRepo) add(m model.Menu) *model.Menu {
	if m.ID == 0 {
		f.nextId++
		m.ID = f.nextId
	} else if m.ID > f.nextId {
		f.nextId = m.ID
	}
	f.menus[m.ID] = &m
	return f.menus[m.ID]
}

func (f *fakeMenuRepo) sorted(filter func(*model.Menu) bool) []model.Menu {
	var out []model.Menu
	for _, m := range f.menus {
		if filter == nil || filter(m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeMenuRepo) GetMenu(_ context.Context, id uint64) (*model.Menu, error) {
	m, ok := f.menus[id]
	if !ok {
		return nil, errs.NotFoundf("menu %d", id)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMenuRepo) GetMenuByPageId(_ context.Context, pageId string) (*model.Menu, error) {
	for _, m := range f.menus {
		if m.PageId == pageId {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errs.NotFoundf("menu %s", pageId)
}

func (f *fakeMenuRepo) GetAllMenus(_ context.Context) ([]model.Menu, error) {
	return f.sorted(nil), nil
}

func (f *fakeMenuRepo) GetActiveMenus(_ context.Context) ([]model.Menu, error) {
	return f.sorted(func(m *model.Menu) bool {
		return m.IsActive == model.MenuActive && m.IsVisible == model.MenuVisible
	}), nil
}

func (f *fakeMenuRepo) GetMenusByLevel(_ context.Context, level int) ([]model.Menu, error) {
	return f.sorted(func(m *model.Menu) bool { return m.Level == level }), nil
}

func (f *fakeMenuRepo) GetMenusByParentId(_ context.Context, parentId *uint64) ([]model.Menu, error) {
	return f.sorted(func(m *model.Menu) bool {
		if parentId == nil {
			return m.ParentId == nil
		}
		return m.ParentId != nil && *m.ParentId == *parentId
	}), nil
}

func (f *fakeMenuRepo) CreateMenu(_ context.Context, menu *model.Menu) error {
	for _, m := range f.menus {
		if m.PageId == menu.PageId {
			return errs.Conflictf("page id %s is taken", menu.PageId)
		}
	}
	f.nextId++
	menu.ID = f.nextId
	cp := *menu
	f.menus[menu.ID] = &cp
	return nil
}

func (f *fakeMenuRepo) UpdateMenu(_ context.Context, menu *model.Menu) error {
	if _, ok := f.menus[menu.ID]; !ok {
		return errs.NotFoundf("menu %d", menu.ID)
	}
	cp := *menu
	f.menus[menu.ID] = &cp
	return nil
}

func (f *fakeMenuRepo) SetActive(_ context.Context, id uint64, active int) error {
	m, ok := f.menus[id]
	if !ok {
		return errs.NotFoundf("menu %d", id)
	}
	m.IsActive = active
	return nil
}

func (f *fakeMenuRepo) UpdateSortOrders(_ context.Context, orders map[uint64]int) error {
	for id, order := range orders {
		m, ok := f.menus[id]
		if !ok {
			return errs.NotFoundf("menu %d", id)
		}
		m.SortOrder = order
	}
	return nil
}

func (f *fakeMenuRepo) UpdateLevels(_ context.Context, levels map[uint64]int) error {
	for id, level := range levels {
		m, ok := f.menus[id]
		if !ok {
			return errs.NotFoundf("menu %d", id)
		}
		m.Level = level
	}
	return nil
}

func (f *fakeMenuRepo) DeleteMenusWithGrants(_ context.Context, ids []uint64) error {
	f.deletedWithGrants = append(f.deletedWithGrants, ids)
	for _, id := range ids {
		delete(f.menus, id)
	}
	return nil
}

type fakeOrgRepo struct {
	units  map[uint64]*model.OrgUnit
	nextId uint64
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{units: make(map[uint64]*model.OrgUnit)}
}

func (f *fakeOrgRepo) add(u model.OrgUnit) *model.OrgUnit {
	if u.ID == 0 {
		f.nextId++
		u.ID = f.nextId
	} else if u.ID > f.nextId {
		f.nextId = u.ID
	}
	f.units[u.ID] = &u
	return f.units[u.ID]
}

func (f *fakeOrgRepo) GetUnit(_ context.Context, id uint64) (*model.OrgUnit, error) {
	u, ok := f.units[id]
	if !ok {
		return nil, errs.NotFoundf("org unit %d", id)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeOrgRepo) GetAllUnits(_ context.Context) ([]model.OrgUnit, error) {
	var out []model.OrgUnit
	for _, u := range f.units {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrgRepo) GetChildren(_ context.Context, parentId uint64) ([]model.OrgUnit, error) {
	var out []model.OrgUnit
	for _, u := range f.units {
		if u.ParentId != nil && *u.ParentId == parentId {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeOrgRepo) CreateUnit(_ context.Context, unit *model.OrgUnit) error {
	f.nextId++
	unit.ID = f.nextId
	cp := *unit
	f.units[unit.ID] = &cp
	return nil
}

func (f *fakeOrgRepo) UpdateUnit(_ context.Context, unit *model.OrgUnit) error {
	if _, ok := f.units[unit.ID]; !ok {
		return errs.NotFoundf("org unit %d", unit.ID)
	}
	cp := *unit
	f.units[unit.ID] = &cp
	return nil
}

func (f *fakeOrgRepo) DeleteUnit(_ context.Context, id uint64) error {
	if _, ok := f.units[id]; !ok {
		return errs.NotFoundf("org unit %d", id)
	}
	delete(f.units, id)
	return nil
}

func (f *fakeOrgRepo) CountChildren(_ context.Context, id uint64) (int64, error) {
	var count int64
	for _, u := range f.units {
		if u.ParentId != nil && *u.ParentId == id {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) add(u model.User) *model.User {
	f.users[u.UserId] = &u
	return f.users[u.UserId]
}

func (f *fakeUserRepo) GetByUserId(_ context.Context, userId string) (*model.User, error) {
	u, ok := f.users[userId]
	if !ok {
		return nil, errs.NotFoundf("user %s", userId)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByLoginId(_ context.Context, loginId string) (*model.User, error) {
	loginId = strings.ToLower(loginId)
	for _, u := range f.users {
		if u.LoginId == loginId {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.NotFoundf("user %s", loginId)
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.UserId]; ok {
		return errs.Conflictf("user %s exists", user.UserId)
	}
	cp := *user
	f.users[user.UserId] = &cp
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.UserId]; !ok {
		return errs.NotFoundf("user %s", user.UserId)
	}
	cp := *user
	f.users[user.UserId] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, userId string) error {
	if _, ok := f.users[userId]; !ok {
		return errs.NotFoundf("user %s", userId)
	}
	delete(f.users, userId)
	return nil
}

func (f *fakeUserRepo) ExistsLoginId(_ context.Context, loginId, excludeUserId string) (bool, error) {
	loginId = strings.ToLower(loginId)
	for _, u := range f.users {
		if u.LoginId == loginId && u.UserId != excludeUserId {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsEmail(_ context.Context, email, excludeUserId string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.UserId != excludeUserId {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ListUserIdsByOrg(_ context.Context, kind string, orgIds []uint64, search, role string) ([]string, error) {
	if len(orgIds) == 0 {
		return nil, nil
	}
	wanted := make(map[uint64]bool, len(orgIds))
	for _, id := range orgIds {
		wanted[id] = true
	}
	var out []string
	for _, u := range f.users {
		var no uint64
		switch kind {
		case model.OrgKindGroup:
			no = u.GroupNo
		case model.OrgKindCorporation:
			no = u.CorpNo
		case model.OrgKindHeadquarters:
			no = u.HeadqNo
		case model.OrgKindTeam:
			no = u.TeamNo
		default:
			return nil, fmt.Errorf("unknown org kind %s", kind)
		}
		if !wanted[no] {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		if search != "" &&
			!strings.Contains(u.LoginId, search) &&
			!strings.Contains(u.Username, search) &&
			!strings.Contains(u.Email, search) {
			continue
		}
		out = append(out, u.UserId)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeUserRepo) GetUsersByUserIds(_ context.Context, userIds []string) ([]model.User, error) {
	var out []model.User
	for _, id := range userIds {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakePermRepo struct {
	grants map[string]int // "userId/menuId" -> granted
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{grants: make(map[string]int)}
}

func permKey(userId string, menuId uint64) string {
	return fmt.Sprintf("%s/%d", userId, menuId)
}

func (f *fakePermRepo) Upsert(_ context.Context, userId string, menuId uint64, granted int) error {
	f.grants[permKey(userId, menuId)] = granted
	return nil
}

func (f *fakePermRepo) BulkUpsert(_ context.Context, userId string, menuIds []uint64, granted int) error {
	for _, id := range menuIds {
		f.grants[permKey(userId, id)] = granted
	}
	return nil
}

func (f *fakePermRepo) IsGranted(_ context.Context, userId string, menuId uint64) (bool, error) {
	return f.grants[permKey(userId, menuId)] == model.PermissionGranted, nil
}

func (f *fakePermRepo) ListMenuIdsByUser(_ context.Context, userId string) ([]uint64, error) {
	var out []uint64
	for key, granted := range f.grants {
		if granted != model.PermissionGranted {
			continue
		}
		parts := strings.SplitN(key, "/", 2)
		if parts[0] != userId {
			continue
		}
		var mid uint64
		if _, err := fmt.Sscanf(parts[1], "%d", &mid); err != nil {
			continue
		}
		out = append(out, mid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakePermRepo) ListUserIdsByMenu(_ context.Context, menuId uint64) ([]string, error) {
	suffix := fmt.Sprintf("/%d", menuId)
	var out []string
	for key, granted := range f.grants {
		if granted == model.PermissionGranted && strings.HasSuffix(key, suffix) {
			out = append(out, strings.TrimSuffix(key, suffix))
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakePermRepo) ClearByUser(_ context.Context, userId string) error {
	prefix := userId + "/"
	for key := range f.grants {
		if strings.HasPrefix(key, prefix) {
			delete(f.grants, key)
		}
	}
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]string)}
}

func (f *fakeTokenRepo) Save(_ context.Context, userId, token string, _ time.Duration) error {
	f.tokens[userId] = token
	return nil
}

func (f *fakeTokenRepo) Get(_ context.Context, userId string) (string, error) {
	token, ok := f.tokens[userId]
	if !ok {
		return "", errs.NotFoundf("token of user %s", userId)
	}
	return token, nil
}

func (f *fakeTokenRepo) Delete(_ context.Context, userId string) error {
	delete(f.tokens, userId)
	return nil
}
