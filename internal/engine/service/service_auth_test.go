package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	svc := NewAuthService(userRepo, tokenRepo, httpx.Auth{
		SecretKey:    "test-secret",
		AccessExpire: 30,
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo.add(model.User{
		UserId:   "u-1",
		LoginId:  "alice",
		Email:    "alice@acme.io",
		Password: string(hash),
		Role:     "admin",
		IsActive: model.UserActive,
	})
	return svc, userRepo, tokenRepo
}

func TestAuthLoginAndValidate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.Login{LoginId: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u-1", resp.UserInfo.UserId)

	userId, err := svc.Validate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userId)
}

func TestAuthLoginFailures(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	ctx := context.Background()

	// 错误口令
	_, err := svc.Login(ctx, &model.Login{LoginId: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, errs.ErrUnauthenticated))

	// 未知用户与口令错误不可区分
	_, err = svc.Login(ctx, &model.Login{LoginId: "nobody", Password: "s3cret"})
	assert.True(t, errors.Is(err, errs.ErrUnauthenticated))

	// 停用账号
	u, err := userRepo.GetByUserId(ctx, "u-1")
	require.NoError(t, err)
	u.IsActive = model.UserInactive
	require.NoError(t, userRepo.Update(ctx, u))
	_, err = svc.Login(ctx, &model.Login{LoginId: "alice", Password: "s3cret"})
	assert.True(t, errors.Is(err, errs.ErrUnauthenticated))
}

func TestAuthSessionSuperseded(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, &model.Login{LoginId: "alice", Password: "s3cret"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &model.Login{LoginId: "alice", Password: "s3cret"})
	require.NoError(t, err)

	// 新会话有效
	userId, err := svc.Validate(ctx, second.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userId)

	// jti 保证同秒连发的令牌也两两不同
	require.NotEqual(t, first.Token, second.Token)

	// 旧会话被覆盖后失效，归因为 expired
	_, err = svc.Validate(ctx, first.Token)
	require.Error(t, err)
	cause, ok := jwt.CauseOf(err)
	require.True(t, ok)
	assert.Equal(t, jwt.CauseExpired, cause)
}

func TestAuthRevoke(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.Login{LoginId: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, "u-1"))

	_, err = svc.Validate(ctx, resp.Token)
	require.Error(t, err)
	cause, ok := jwt.CauseOf(err)
	require.True(t, ok)
	assert.Equal(t, jwt.CauseExpired, cause)
}

func TestAuthValidateBadToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Validate(context.Background(), "not-a-jwt")
	require.Error(t, err)
	cause, ok := jwt.CauseOf(err)
	require.True(t, ok)
	assert.Equal(t, jwt.CauseMalformed, cause)
}
