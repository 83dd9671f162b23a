package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{orderService: s}
}

func toOrderResponse(o *model.ShippingOrder) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              o.ID,
		ExternalOrderID: o.ExternalOrderID,
		CompanyID:       o.CompanyID,
		UserID:          o.UserID,
		Status:          o.Status,
		TrackingNumber:  o.TrackingNumber,
		TotalCharge:     o.TotalCharge,
		Currency:        o.Currency,
		LabelFilePath:   o.LabelFilePath,
		LastError:       o.LastError,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// Create
// @Summary 创建发货订单
// @Description 登记一条待打单的发货订单，归属调用人及其公司
// @Tags Order (订单模块)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "订单参数"
// @Success 200 {object} dto.OrderResponse "创建成功"
// @Failure 400 {object} dto.ErrorResponse "参数错误"
// @Router /api/orders [post]
func (ctrl *OrderController) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "参数错误: " + err.Error()})
		return
	}

	order, err := ctrl.orderService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Get
// @Summary 查询订单详情
// @Tags Order (订单模块)
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单 ID"
// @Success 200 {object} dto.OrderResponse "订单详情"
// @Failure 403 {object} dto.ErrorResponse "无权查看"
// @Failure 404 {object} dto.ErrorResponse "订单不存在"
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "id 必须是数字"})
		return
	}

	order, err := ctrl.orderService.GetForUser(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// List
// @Summary 分页查询订单
// @Description 管理员可查全部，普通用户只能查本公司订单
// @Tags Order (订单模块)
// @Produce json
// @Security BearerAuth
// @Param status query string false "订单状态 pending/label_created/completed/error"
// @Param start_date query string false "起始时间 (RFC3339)"
// @Param end_date query string false "截止时间 (RFC3339)"
// @Param page query int false "页码，默认 1"
// @Param page_size query int false "每页条数，默认 20"
// @Success 200 {object} map[string]interface{} "订单列表"
// @Router /api/orders [get]
func (ctrl *OrderController) List(c *gin.Context) {
	// 1. 组装过滤条件
	filter := repository.OrderFilter{
		Status: c.Query("status"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.EndDate = &t
		}
	}

	// 2. 调用 Service（可见范围在 Service 内收敛）
	orders, total, err := ctrl.orderService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"items": items,
	})
}
