package service

import (
	"context"
	"net/http"

	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService 登录与用户信息
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Login 邮箱密码登录，签发 JWT 对
func (s *UserService) Login(ctx context.Context, email, password string) (*model.SysUser, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// 账号不存在和密码错误给同一个提示，不泄露账号存在性
		return nil, "", "", NewAPIError(http.StatusUnauthorized, "邮箱或密码错误")
	}
	if user.Status != model.UserStatusActive {
		return nil, "", "", NewAPIError(http.StatusForbidden, "账号已停用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", NewAPIError(http.StatusUnauthorized, "邮箱或密码错误")
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", "", NewAPIError(http.StatusInternalServerError, "Token 签发失败: %v", err)
	}
	return user, accessToken, refreshToken, nil
}

// Refresh 用 refresh token 换新的 Token 对
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*model.SysUser, string, string, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, "", "", NewAPIError(http.StatusUnauthorized, "refresh token 无效")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, "", "", NewAPIError(http.StatusUnauthorized, "用户不存在")
	}
	if user.Status != model.UserStatusActive {
		return nil, "", "", NewAPIError(http.StatusForbidden, "账号已停用")
	}

	accessToken, newRefresh, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", "", NewAPIError(http.StatusInternalServerError, "Token 签发失败: %v", err)
	}
	return user, accessToken, newRefresh, nil
}

// GetProfile 当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.SysUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewAPIError(http.StatusUnauthorized, "用户不存在")
	}
	return user, nil
}
