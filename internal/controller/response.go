package controller

import (
	"errors"
	"net/http"

	"github.com/Adrian140/prep-center-sub001/internal/api/dto"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/Adrian140/prep-center-sub001/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeServiceError 把 Service 层错误翻译成 HTTP 响应
// 带状态码的业务错误按原码返回，其余一律 500 且不向外透出内部细节
func writeServiceError(c *gin.Context, err error) {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, dto.ErrorResponse{Error: apiErr.Message, Status: apiErr.Status})
		return
	}
	logger.Error("请求处理失败", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "服务器内部错误"})
}
