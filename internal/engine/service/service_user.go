package service

import (
	"context"
	"strings"

	"github.com/go-atrium/atrium/internal/engine/errs"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/id"
	"github.com/go-atrium/atrium/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/02/12
 * @file: service_user.go
 * @description: 用户目录服务
 */

type UserService struct {
	userRepo  repo.IUserRepository
	orgSvc    *OrgService
	permSvc   *PermissionService
	tokenRepo repo.ITokenRepository
}

func NewUserService(userRepo repo.IUserRepository, orgSvc *OrgService, permSvc *PermissionService, tokenRepo repo.ITokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		orgSvc:    orgSvc,
		permSvc:   permSvc,
		tokenRepo: tokenRepo,
	}
}

// GetByUserId 按用户ID取用户
func (s *UserService) GetByUserId(ctx context.Context, userId string) (*model.User, error) {
	return s.userRepo.GetByUserId(ctx, userId)
}

// GetByLoginId 按登录名取用户
func (s *UserService) GetByLoginId(ctx context.Context, loginId string) (*model.User, error) {
	return s.userRepo.GetByLoginId(ctx, loginId)
}

// CheckLoginIdAvailable 登录名是否可用（大小写不敏感）
func (s *UserService) CheckLoginIdAvailable(ctx context.Context, loginId string) (bool, error) {
	exists, err := s.userRepo.ExistsLoginId(ctx, loginId, "")
	return !exists, err
}

// CheckEmailAvailable 邮箱是否可用
func (s *UserService) CheckEmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsEmail(ctx, email, "")
	return !exists, err
}

// CreateUser 创建用户
// 登录名落库前转小写；登录名/邮箱占用返回冲突而非覆盖
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserReq) (*model.User, error) {
	if req.LoginId == "" || req.Email == "" || req.Password == "" {
		return nil, errs.Structuralf("loginId, email and password are required")
	}

	if exists, err := s.userRepo.ExistsLoginId(ctx, req.LoginId, ""); err != nil {
		return nil, err
	} else if exists {
		return nil, errs.Conflictf("login id %s is taken", req.LoginId)
	}
	if exists, err := s.userRepo.ExistsEmail(ctx, req.Email, ""); err != nil {
		return nil, err
	} else if exists {
		return nil, errs.Conflictf("email %s is taken", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "viewer"
	}

	user := &model.User{
		UserId:   id.GetUUID(),
		LoginId:  strings.ToLower(req.LoginId),
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Role:     role,
		IsActive: model.UserActive,
	}

	if req.OrgNo != 0 {
		if err := s.applyOrgChain(ctx, user, req.OrgNo); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser 更新用户，唯一性校验排除自身
func (s *UserService) UpdateUser(ctx context.Context, userId string, req *model.UpdateUserReq) (*model.User, error) {
	user, err := s.userRepo.GetByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	if req.LoginId != nil {
		if exists, err := s.userRepo.ExistsLoginId(ctx, *req.LoginId, userId); err != nil {
			return nil, err
		} else if exists {
			return nil, errs.Conflictf("login id %s is taken", *req.LoginId)
		}
		user.LoginId = strings.ToLower(*req.LoginId)
	}
	if req.Email != nil {
		if exists, err := s.userRepo.ExistsEmail(ctx, *req.Email, userId); err != nil {
			return nil, err
		} else if exists {
			return nil, errs.Conflictf("email %s is taken", *req.Email)
		}
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 删除用户，连带清空其授权并撤销会话
func (s *UserService) DeleteUser(ctx context.Context, userId string) error {
	if err := s.userRepo.Delete(ctx, userId); err != nil {
		return err
	}
	if err := s.permSvc.ClearAll(ctx, userId); err != nil {
		log.Errorw("failed to clear grants of deleted user", "userId", userId, "error", err)
	}
	if err := s.tokenRepo.Delete(ctx, userId); err != nil {
		log.Errorw("failed to revoke token of deleted user", "userId", userId, "error", err)
	}
	return nil
}

// MoveOrg 把用户挂到另一组织单元，冗余列随权威链整体重算
func (s *UserService) MoveOrg(ctx context.Context, userId string, orgNo uint64) (*model.User, error) {
	user, err := s.userRepo.GetByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if orgNo == 0 {
		user.GroupNo, user.CorpNo, user.HeadqNo, user.TeamNo = 0, 0, 0, 0
	} else if err := s.applyOrgChain(ctx, user, orgNo); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// applyOrgChain 以 orgNo 为权威单元，沿祖先链填充四个冗余列
func (s *UserService) applyOrgChain(ctx context.Context, user *model.User, orgNo uint64) error {
	chain, err := s.orgSvc.AncestorChain(ctx, orgNo)
	if err != nil {
		return err
	}
	user.GroupNo, user.CorpNo, user.HeadqNo, user.TeamNo = 0, 0, 0, 0
	for _, unit := range chain {
		switch unit.Kind {
		case model.OrgKindGroup:
			user.GroupNo = unit.ID
		case model.OrgKindCorporation:
			user.CorpNo = unit.ID
		case model.OrgKindHeadquarters:
			user.HeadqNo = unit.ID
		case model.OrgKindTeam:
			user.TeamNo = unit.ID
		}
	}
	return nil
}
