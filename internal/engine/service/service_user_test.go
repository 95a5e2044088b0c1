package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*UserService, *fakeUserRepo, *fakeOrgRepo, *fakePermRepo, *fakeTokenRepo) {
	userRepo := newFakeUserRepo()
	orgRepo := newFakeOrgRepo()
	permRepo := newFakePermRepo()
	tokenRepo := newFakeTokenRepo()
	orgSvc := NewOrgService(orgRepo, userRepo)
	permSvc := NewPermissionService(permRepo, nil)
	svc := NewUserService(userRepo, orgSvc, permSvc, tokenRepo)
	return svc, userRepo, orgRepo, permRepo, tokenRepo
}

func TestUserCreate(t *testing.T) {
	svc, _, orgRepo, _, _ := newUserFixture()
	seedOrgTree(orgRepo)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserReq{
		LoginId:  "Alice",
		Username: "Alice",
		Password: "s3cret",
		Email:    "alice@acme.io",
		OrgNo:    4,
	})
	require.NoError(t, err)

	// 登录名统一小写，默认角色 viewer
	assert.Equal(t, "alice", user.LoginId)
	assert.Equal(t, "viewer", user.Role)
	assert.NotEmpty(t, user.UserId)
	assert.Equal(t, model.UserActive, user.IsActive)

	// 口令不落明文
	assert.NotEqual(t, "s3cret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))

	// 权威单元 team 4 → 整条链冗余列
	assert.Equal(t, uint64(1), user.GroupNo)
	assert.Equal(t, uint64(2), user.CorpNo)
	assert.Equal(t, uint64(3), user.HeadqNo)
	assert.Equal(t, uint64(4), user.TeamNo)
}

func TestUserCreateConflicts(t *testing.T) {
	svc, userRepo, _, _, _ := newUserFixture()
	ctx := context.Background()
	userRepo.add(model.User{UserId: "u-1", LoginId: "alice", Email: "alice@acme.io"})

	_, err := svc.CreateUser(ctx, &model.CreateUserReq{LoginId: "ALICE", Password: "x", Email: "new@acme.io"})
	assert.True(t, errors.Is(err, errs.ErrConflict))

	_, err = svc.CreateUser(ctx, &model.CreateUserReq{LoginId: "bob", Password: "x", Email: "alice@acme.io"})
	assert.True(t, errors.Is(err, errs.ErrConflict))

	_, err = svc.CreateUser(ctx, &model.CreateUserReq{LoginId: "bob", Email: "b@acme.io"})
	assert.True(t, errors.Is(err, errs.ErrStructural))
}

func TestUserUpdateExcludesSelf(t *testing.T) {
	svc, userRepo, _, _, _ := newUserFixture()
	ctx := context.Background()
	userRepo.add(model.User{UserId: "u-1", LoginId: "alice", Email: "alice@acme.io"})
	userRepo.add(model.User{UserId: "u-2", LoginId: "bob", Email: "bob@acme.io"})

	// 改回自己的登录名不算冲突
	alice := "alice"
	_, err := svc.UpdateUser(ctx, "u-1", &model.UpdateUserReq{LoginId: &alice})
	require.NoError(t, err)

	// 占用他人的登录名是冲突
	bob := "bob"
	_, err = svc.UpdateUser(ctx, "u-1", &model.UpdateUserReq{LoginId: &bob})
	assert.True(t, errors.Is(err, errs.ErrConflict))
}

func TestUserDeleteCascades(t *testing.T) {
	svc, userRepo, _, permRepo, tokenRepo := newUserFixture()
	ctx := context.Background()
	userRepo.add(model.User{UserId: "u-1", LoginId: "alice", Email: "alice@acme.io"})
	require.NoError(t, permRepo.BulkUpsert(ctx, "u-1", []uint64{1, 2}, model.PermissionGranted))
	require.NoError(t, tokenRepo.Save(ctx, "u-1", "tok", 0))

	require.NoError(t, svc.DeleteUser(ctx, "u-1"))

	_, err := svc.GetByUserId(ctx, "u-1")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
	menuIds, err := permRepo.ListMenuIdsByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, menuIds)
	_, err = tokenRepo.Get(ctx, "u-1")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestUserMoveOrg(t *testing.T) {
	svc, userRepo, orgRepo, _, _ := newUserFixture()
	seedOrgTree(orgRepo)
	ctx := context.Background()
	userRepo.add(model.User{UserId: "u-1", LoginId: "alice", Email: "alice@acme.io", GroupNo: 1, CorpNo: 2, HeadqNo: 3, TeamNo: 4})

	// 挂到 West HQ：team 列清零
	user, err := svc.MoveOrg(ctx, "u-1", 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), user.GroupNo)
	assert.Equal(t, uint64(2), user.CorpNo)
	assert.Equal(t, uint64(5), user.HeadqNo)
	assert.Zero(t, user.TeamNo)

	// 摘除挂载：四列全清
	user, err = svc.MoveOrg(ctx, "u-1", 0)
	require.NoError(t, err)
	assert.Zero(t, user.GroupNo)
	assert.Zero(t, user.CorpNo)
	assert.Zero(t, user.HeadqNo)
	assert.Zero(t, user.TeamNo)

	// 未知单元
	_, err = svc.MoveOrg(ctx, "u-1", 99)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestUserAvailabilityChecks(t *testing.T) {
	svc, userRepo, _, _, _ := newUserFixture()
	ctx := context.Background()
	userRepo.add(model.User{UserId: "u-1", LoginId: "alice", Email: "alice@acme.io"})

	available, err := svc.CheckLoginIdAvailable(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.CheckLoginIdAvailable(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.CheckEmailAvailable(ctx, "alice@acme.io")
	require.NoError(t, err)
	assert.False(t, available)
}
