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

type InvoiceController struct {
	invoiceService *service.InvoiceService
}

func NewInvoiceController(s *service.InvoiceService) *InvoiceController {
	return &InvoiceController{invoiceService: s}
}

func toInvoiceResponse(inv *model.InvoiceFile) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            inv.ID,
		IntegrationID: inv.IntegrationID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Currency:      inv.Currency,
		AmountTotal:   inv.AmountTotal,
		Source:        inv.Source,
		Status:        inv.Status,
	}
}

// List
// @Summary 分页查询账单
// @Description 管理员可查全部，普通用户只能查本公司接入产生的账单
// @Tags Invoice (账单模块)
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认 1"
// @Param page_size query int false "每页条数，默认 20"
// @Success 200 {object} map[string]interface{} "账单列表"
// @Router /api/invoices [get]
func (ctrl *InvoiceController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	invoices, total, err := ctrl.invoiceService.ListForUser(c.Request.Context(), middleware.GetUserID(c), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, toInvoiceResponse(&invoices[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"items": items,
	})
}

// GetByOrder
// @Summary 查询订单对应的账单
// @Tags Invoice (账单模块)
// @Produce json
// @Security BearerAuth
// @Param order_id path int true "订单 ID"
// @Success 200 {object} dto.InvoiceResponse "账单详情"
// @Failure 404 {object} dto.ErrorResponse "账单不存在"
// @Router /api/invoices/order/{order_id} [get]
func (ctrl *InvoiceController) GetByOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "order_id 必须是数字"})
		return
	}

	invoice, err := ctrl.invoiceService.GetForOrder(c.Request.Context(), middleware.GetUserID(c), orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}
