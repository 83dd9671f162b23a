package controller

import (
	"net/http"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{userService: s}
}

func toUserResponse(u *model.SysUser) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CompanyID: u.CompanyID,
		Role:      u.Role,
		Limited:   u.Limited,
	}
}

// Login
// @Summary 账号密码登录
// @Description 校验密码后签发 Access/Refresh Token 对
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录参数"
// @Success 200 {object} dto.LoginResponse "登录成功"
// @Failure 401 {object} dto.ErrorResponse "邮箱或密码错误"
// @Router /api/auth/login [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "参数错误: " + err.Error()})
		return
	}

	user, accessToken, refreshToken, err := ctrl.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	})
}

// Refresh
// @Summary 刷新 Token
// @Tags User (用户模块)
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "刷新参数"
// @Success 200 {object} dto.LoginResponse "刷新成功"
// @Failure 401 {object} dto.ErrorResponse "Refresh Token 无效"
// @Router /api/auth/refresh [post]
func (ctrl *UserController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "参数错误: " + err.Error()})
		return
	}

	user, accessToken, refreshToken, err := ctrl.userService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	})
}

// Me
// @Summary 查询当前用户信息
// @Tags User (用户模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "用户信息"
// @Router /api/users/me [get]
func (ctrl *UserController) Me(c *gin.Context) {
	user, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
