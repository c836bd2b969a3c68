package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAdminDisabled      = errors.New("未配置管理员密码，管理接口不可用")
)

// RoleAdmin 管理员角色
const RoleAdmin = "admin"

// AuthService 管理端认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	cfg    *config.AuthConfig
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, jwtMgr: jwtMgr, logger: logger}
}

func (s *authService) Login(_ context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	if s.cfg.AdminPasswordHash == "" {
		return nil, ErrAdminDisabled
	}

	// 1. 校验用户名（常量时间比较）
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) != 1 {
		return nil, ErrInvalidCredentials
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("管理员登录失败", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 Access Token
	token, err := s.jwtMgr.GenerateAccessToken(req.Username, RoleAdmin)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
	}, nil
}
