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
	"errors"
	"time"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	httpx "github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/http/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 会话服务
// 单会话策略：签发新令牌覆盖 redis 中的旧值，旧令牌即刻失效
type AuthService struct {
	userRepo  repo.IUserRepository
	tokenRepo repo.ITokenRepository
	auth      httpx.Auth
}

func NewAuthService(userRepo repo.IUserRepository, tokenRepo repo.ITokenRepository, auth httpx.Auth) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		auth:      auth,
	}
}

// Login 校验口令并签发令牌
func (s *AuthService) Login(ctx context.Context, req *model.Login) (*model.LoginResp, error) {
	user, err := s.userRepo.GetByLoginId(ctx, req.LoginId)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthenticated
		}
		return nil, err
	}
	if user.IsActive != model.UserActive {
		return nil, errs.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.ErrUnauthenticated
	}

	token, expireAt, err := s.Issue(ctx, user.UserId)
	if err != nil {
		return nil, err
	}

	return &model.LoginResp{
		UserInfo: user.Info(),
		Token:    token,
		ExpireAt: expireAt,
	}, nil
}

// Issue 为用户签发令牌，覆盖旧会话
func (s *AuthService) Issue(ctx context.Context, userId string) (string, int64, error) {
	token, err := jwt.GenToken(userId, []byte(s.auth.SecretKey), s.auth.AccessExpire)
	if err != nil {
		return "", 0, err
	}
	ttl := s.auth.AccessExpire * time.Minute
	if err := s.tokenRepo.Save(ctx, userId, token, ttl); err != nil {
		return "", 0, err
	}
	return token, time.Now().Add(ttl).Unix(), nil
}

// Validate 校验令牌并解析用户ID
// 失败返回 *jwt.CauseError，四种原因驱动拒绝响应与指标维度：
// malformed / unsupported / invalid_signature / expired
func (s *AuthService) Validate(ctx context.Context, token string) (string, error) {
	claims, err := jwt.ParseToken(token, s.auth.SecretKey)
	if err != nil {
		return "", err
	}

	stored, err := s.tokenRepo.Get(ctx, claims.UserId)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// redis 中无记录：会话已撤销或被新会话覆盖后过期
			return "", jwt.NewCauseError(jwt.CauseExpired, errors.New("session revoked"))
		}
		return "", err
	}
	if stored != token {
		// 已被更新的会话取代
		return "", jwt.NewCauseError(jwt.CauseExpired, errors.New("session superseded"))
	}

	return claims.UserId, nil
}

// Revoke 撤销用户的当前会话
func (s *AuthService) Revoke(ctx context.Context, userId string) error {
	return s.tokenRepo.Delete(ctx, userId)
}
