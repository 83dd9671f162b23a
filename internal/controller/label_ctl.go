package controller

import (
	"net/http"
	"strconv"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

type LabelController struct {
	labelService *service.LabelService
}

func NewLabelController(s *service.LabelService) *LabelController {
	return &LabelController{labelService: s}
}

// Create
// @Summary 为订单购买 UPS 面单
// @Description 调用 UPS 打单接口出面单并落库，同一订单重复调用幂等更新账单
// @Tags Label (打单模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLabelRequest true "打单参数"
// @Success 200 {object} dto.CreateLabelResponse "打单成功"
// @Failure 400 {object} dto.ErrorResponse "缺少订单 ID / 公司未接入 UPS"
// @Failure 403 {object} dto.ErrorResponse "无权操作该订单"
// @Failure 404 {object} dto.ErrorResponse "订单不存在"
// @Failure 502 {object} dto.ErrorResponse "取 Token 失败或 UPS 返回错误"
// @Router /api/labels [post]
func (ctrl *LabelController) Create(c *gin.Context) {
	// 1. 解析请求体
	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "缺少订单 ID"})
		return
	}

	// 2. 调用 Service
	resp, err := ctrl.labelService.IssueLabel(c.Request.Context(), middleware.GetUserID(c), req.OrderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Void
// @Summary 取消订单面单
// @Description 调用 UPS 取消接口，不回退订单状态
// @Tags Label (打单模块)
// @Produce json
// @Security BearerAuth
// @Param order_id path int true "订单 ID (Database Primary Key)"
// @Success 200 {object} map[string]interface{} "取消成功"
// @Failure 400 {object} dto.ErrorResponse "订单尚未出单"
// @Failure 404 {object} dto.ErrorResponse "订单不存在"
// @Router /api/labels/{order_id}/void [post]
func (ctrl *LabelController) Void(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "order_id 必须是数字"})
		return
	}

	if err := ctrl.labelService.VoidLabel(c.Request.Context(), middleware.GetUserID(c), orderID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "order_id": orderID})
}
