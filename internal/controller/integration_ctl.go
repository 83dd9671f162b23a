package controller

import (
	"net/http"
	"strconv"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

type IntegrationController struct {
	integrationService *service.IntegrationService
}

func NewIntegrationController(s *service.IntegrationService) *IntegrationController {
	return &IntegrationController{integrationService: s}
}

// 响应里只暴露账号信息，Token 密文留在库里
func toIntegrationResponse(it *model.Integration) dto.IntegrationResponse {
	return dto.IntegrationResponse{
		ID:               it.ID,
		CompanyID:        it.CompanyID,
		UPSAccountNumber: it.UPSAccountNumber,
		OAuthScope:       it.OAuthScope,
		Status:           it.Status,
		LastError:        it.LastError,
		LastSyncedAt:     it.LastSyncedAt,
	}
}

// Create
// @Summary 登记 UPS 账号接入
// @Description 每个公司只允许一条接入记录
// @Tags Integration (接入模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateIntegrationRequest true "接入参数"
// @Success 200 {object} dto.IntegrationResponse "登记成功"
// @Failure 400 {object} dto.ErrorResponse "公司已存在接入"
// @Router /api/integrations [post]
func (ctrl *IntegrationController) Create(c *gin.Context) {
	var req dto.CreateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "参数错误: " + err.Error()})
		return
	}

	integration, err := ctrl.integrationService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toIntegrationResponse(integration))
}

// List
// @Summary 查询本公司的 UPS 接入
// @Tags Integration (接入模块)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "接入列表"
// @Router /api/integrations [get]
func (ctrl *IntegrationController) List(c *gin.Context) {
	integrations, err := ctrl.integrationService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]dto.IntegrationResponse, 0, len(integrations))
	for i := range integrations {
		items = append(items, toIntegrationResponse(&integrations[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get
// @Summary 查询接入详情
// @Tags Integration (接入模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "接入 ID"
// @Success 200 {object} dto.IntegrationResponse "接入详情"
// @Failure 403 {object} dto.ErrorResponse "无权访问该接入"
// @Failure 404 {object} dto.ErrorResponse "接入不存在"
// @Router /api/integrations/{id} [get]
func (ctrl *IntegrationController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "id 必须是数字"})
		return
	}

	integration, err := ctrl.integrationService.GetForUser(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toIntegrationResponse(integration))
}

// TestConnection
// @Summary 测试 UPS 接入连通性
// @Description 强制走一次取 Token 流程，返回 Token 来源
// @Tags Integration (接入模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "接入 ID"
// @Success 200 {object} map[string]interface{} "连通成功"
// @Failure 502 {object} dto.ErrorResponse "取 Token 失败"
// @Router /api/integrations/{id}/test [post]
func (ctrl *IntegrationController) TestConnection(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "id 必须是数字"})
		return
	}

	source, err := ctrl.integrationService.TestConnection(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token_source": source})
}
