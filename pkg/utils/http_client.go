package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient 创建统一配置的 Resty 客户端
// 全系统对外 HTTP 请求（UPS OAuth / 打单接口）都走这里拿客户端
func NewAPIClient(timeout time.Duration) *resty.Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "PrepCenter-Go-App/1.0")
}
