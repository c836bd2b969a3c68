package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T, password string) (AuthService, *jwt.Manager) {
	t.Helper()
	cfg := &config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
		AdminUsername:  "admin",
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("生成密码哈希失败: %v", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}
	mgr := jwt.NewManager(cfg)
	return NewAuthService(cfg, mgr, zap.NewNop()), mgr
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, mgr := setupTestAuthService(t, "Showcase2026")

	resp, err := svc.Login(context.Background(), &dto.AdminLoginRequest{Username: "admin", Password: "Showcase2026"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", resp.ExpiresIn)
	}

	claims, err := mgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 无法解析: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t, "Showcase2026")

	_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{Username: "admin", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc, _ := setupTestAuthService(t, "Showcase2026")

	_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{Username: "root", Password: "Showcase2026"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	svc, _ := setupTestAuthService(t, "")

	_, err := svc.Login(context.Background(), &dto.AdminLoginRequest{Username: "admin", Password: "anything"})
	if !errors.Is(err, ErrAdminDisabled) {
		t.Errorf("期望 ErrAdminDisabled，实际: %v", err)
	}
}
