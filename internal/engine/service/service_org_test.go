package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 层级:
//
//	1 group
//	└── 2 corporation
//	    ├── 3 headquarters
//	    │   └── 4 team
//	    └── 5 headquarters
func seedOrgTree(repo *fakeOrgRepo) {
	repo.add(model.OrgUnit{BaseModel: model.BaseModel{ID: 1}, Kind: model.OrgKindGroup, Name: "Acme Group"})
	repo.add(model.OrgUnit{BaseModel: model.BaseModel{ID: 2}, Kind: model.OrgKindCorporation, Name: "Acme Corp", ParentId: u64(1)})
	repo.add(model.OrgUnit{BaseModel: model.BaseModel{ID: 3}, Kind: model.OrgKindHeadquarters, Name: "East HQ", ParentId: u64(2)})
	repo.add(model.OrgUnit{BaseModel: model.BaseModel{ID: 4}, Kind: model.OrgKindTeam, Name: "Platform Team", ParentId: u64(3)})
	repo.add(model.OrgUnit{BaseModel: model.BaseModel{ID: 5}, Kind: model.OrgKindHeadquarters, Name: "West HQ", ParentId: u64(2)})
}

func newOrgFixture() (*OrgService, *fakeOrgRepo, *fakeUserRepo) {
	orgRepo := newFakeOrgRepo()
	userRepo := newFakeUserRepo()
	return NewOrgService(orgRepo, userRepo), orgRepo, userRepo
}

func TestOrgCreateUnitEdgeRule(t *testing.T) {
	svc, orgRepo, _ := newOrgFixture()
	seedOrgTree(orgRepo)
	ctx := context.Background()

	// team 挂在 headquarters 下: 合法
	unit, err := svc.CreateUnit(ctx, &model.CreateOrgUnitReq{
		Kind: model.OrgKindTeam, Name: "Data Team", ParentId: u64(5),
	})
	require.NoError(t, err)
	assert.NotZero(t, unit.ID)

	// team 挂在 team 下: 同秩被拒
	_, err = svc.CreateUnit(ctx, &model.CreateOrgUnitReq{
		Kind: model.OrgKindTeam, Name: "Sub Team", ParentId: u64(4),
	})
	assert.True(t, errors.Is(err, errs.ErrStructural))

	// corporation 挂在 headquarters 下: 逆秩被拒
	_, err = svc.CreateUnit(ctx, &model.CreateOrgUnitReq{
		Kind: model.OrgKindCorporation, Name: "Shadow Corp", ParentId: u64(3),
	})
	assert.True(t, errors.Is(err, errs.ErrStructural))

	// 未知 kind
	_, err = svc.CreateUnit(ctx, &model.CreateOrgUnitReq{Kind: "division", Name: "X"})
	assert.True(t, errors.Is(err, errs.ErrStructural))
}

func TestOrgUpdateUnitReparent(t *testing.T) {
	svc, orgRepo, _ := newOrgFixture()
	seedOrgTree(orgRepo)
	ctx := context.Background()

	// team 从 East HQ 挪到 West HQ
	unit, err := svc.UpdateUnit(ctx, 4, &model.UpdateOrgUnitReq{ParentId: u64(5)})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), *unit.ParentId)

	// headquarters 挂到 team 下被拒
	_, err = svc.UpdateUnit(ctx, 3, &model.UpdateOrgUnitReq{ParentId: u64(4)})
	assert.True(t, errors.Is(err, errs.ErrStructural))

	// 自引用被拒
	_, err = svc.UpdateUnit(ctx, 3, &model.UpdateOrgUnitReq{ParentId: u64(3)})
	assert.True(t, errors.Is(err, errs.ErrStructural))
}

func TestOrgDeleteUnit(t *testing.T) {
	svc, orgRepo, _ := newOrgFixture()
	seedOrgTree(orgRepo)
	ctx := context.Background()

	// 有子单元时拒绝
	err := svc.DeleteUnit(ctx, 2)
	assert.True(t, errors.Is(err, errs.ErrStructural))

	// 叶子可删
	require.NoError(t, svc.DeleteUnit(ctx, 4))
	_, err = svc.GetUnit(ctx, 4)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestOrgResolveDescendantUnits(t *testing.T) {
	svc, orgRepo, _ := newOrgFixture()
	seedOrgTree(orgRepo)

	ids, err := svc.ResolveDescendantUnits(context.Background(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5}, ids)

	ids, err = svc.ResolveDescendantUnits(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4}, ids)

	_, err = svc.ResolveDescendantUnits(context.Background(), 99)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestOrgAncestorChain(t *testing.T) {
	svc, orgRepo, _ := newOrgFixture()
	seedOrgTree(orgRepo)

	chain, err := svc.AncestorChain(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, chain, 4)
	assert.Equal(t, uint64(4), chain[0].ID)
	assert.Equal(t, uint64(3), chain[1].ID)
	assert.Equal(t, uint64(2), chain[2].ID)
	assert.Equal(t, uint64(1), chain[3].ID)
}

func seedHierarchyUsers(userRepo *fakeUserRepo) {
	userRepo.add(model.User{UserId: "u-alice", LoginId: "alice", Username: "Alice", Email: "alice@acme.io", Role: "admin", GroupNo: 1, CorpNo: 2, HeadqNo: 3, TeamNo: 4, IsActive: model.UserActive})
	userRepo.add(model.User{UserId: "u-bob", LoginId: "bob", Username: "Bob", Email: "bob@acme.io", Role: "viewer", GroupNo: 1, CorpNo: 2, HeadqNo: 5, IsActive: model.UserActive})
	userRepo.add(model.User{UserId: "u-carol", LoginId: "carol", Username: "Carol", Email: "carol@acme.io", Role: "viewer", GroupNo: 1, CorpNo: 2, HeadqNo: 3, IsActive: model.UserActive})
	userRepo.add(model.User{UserId: "u-dave", LoginId: "dave", Username: "Dave", Email: "dave@other.io", Role: "operator", GroupNo: 9, IsActive: model.UserActive})
}

func TestOrgCountActorsDeduplicates(t *testing.T) {
	svc, orgRepo, userRepo := newOrgFixture()
	seedOrgTree(orgRepo)
	seedHierarchyUsers(userRepo)
	ctx := context.Background()

	// alice 同时命中 headq 3 与 team 4，只计一次
	total, err := svc.CountActorsUnderHierarchy(ctx, &model.HierarchyFilter{
		HeadqIds: []uint64{3},
		TeamIds:  []uint64{4},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total) // alice + carol

	// 全集
	total, err = svc.CountActorsUnderHierarchy(ctx, &model.HierarchyFilter{
		GroupIds: []uint64{1, 9},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	// 空过滤集命中空集
	total, err = svc.CountActorsUnderHierarchy(ctx, &model.HierarchyFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestOrgListActorsPaginates(t *testing.T) {
	svc, orgRepo, userRepo := newOrgFixture()
	seedOrgTree(orgRepo)
	seedHierarchyUsers(userRepo)
	ctx := context.Background()

	filter := &model.HierarchyFilter{GroupIds: []uint64{1, 9}}

	page, err := svc.ListActorsUnderHierarchy(ctx, filter, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 3)
	// userId 升序
	assert.Equal(t, "u-alice", page.Items[0].UserId)
	assert.Equal(t, "u-bob", page.Items[1].UserId)
	assert.Equal(t, "u-carol", page.Items[2].UserId)

	page, err = svc.ListActorsUnderHierarchy(ctx, filter, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u-dave", page.Items[0].UserId)

	// 越界 offset 返回空页而非错误
	page, err = svc.ListActorsUnderHierarchy(ctx, filter, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Empty(t, page.Items)
}

func TestOrgCountListConsistent(t *testing.T) {
	svc, orgRepo, userRepo := newOrgFixture()
	seedOrgTree(orgRepo)
	seedHierarchyUsers(userRepo)
	ctx := context.Background()

	filters := []*model.HierarchyFilter{
		{GroupIds: []uint64{1}},
		{HeadqIds: []uint64{3}, TeamIds: []uint64{4}},
		{GroupIds: []uint64{1}, Role: "viewer"},
		{GroupIds: []uint64{1}, Search: "acme"},
		{CorpIds: []uint64{2}, Search: "bob"},
	}
	for _, filter := range filters {
		total, err := svc.CountActorsUnderHierarchy(ctx, filter)
		require.NoError(t, err)
		page, err := svc.ListActorsUnderHierarchy(ctx, filter, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, total, page.Total)
		assert.Equal(t, int(total), len(page.Items))
	}
}

func TestOrgRoleAndSearchFilters(t *testing.T) {
	svc, orgRepo, userRepo := newOrgFixture()
	seedOrgTree(orgRepo)
	seedHierarchyUsers(userRepo)
	ctx := context.Background()

	page, err := svc.ListActorsUnderHierarchy(ctx, &model.HierarchyFilter{
		GroupIds: []uint64{1},
		Role:     "viewer",
	}, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "u-bob", page.Items[0].UserId)
	assert.Equal(t, "u-carol", page.Items[1].UserId)

	page, err = svc.ListActorsUnderHierarchy(ctx, &model.HierarchyFilter{
		GroupIds: []uint64{1},
		Search:   "alice",
	}, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u-alice", page.Items[0].UserId)
}
