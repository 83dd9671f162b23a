package task

import (
	"context"
	"sync"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/Adrian140/prep-center-sub001/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type TokenTask struct {
	IntegrationRepo repository.IntegrationRepository
	TokenService    *service.TokenService
	Cron            *cron.Cron

	// 控制并发刷新的数量，避免对 UPS 授权接口形成突发流量
	concurrencyLimit int
	sleepTime        time.Duration
	expiryWindow     time.Duration
}

func NewTokenTask(integrationRepo repository.IntegrationRepository, tokenService *service.TokenService) *TokenTask {
	return &TokenTask{
		IntegrationRepo:  integrationRepo,
		TokenService:     tokenService,
		Cron:             cron.New(cron.WithSeconds()), // 支持秒级控制
		concurrencyLimit: 10,
		sleepTime:        50 * time.Millisecond, // 每个协程启动间隔，平滑波峰
		expiryWindow:     45 * time.Minute,
	}
}

// Start 启动定时任务
func (t *TokenTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		logger.Info("[Task] 服务启动，正在执行首次 Token 检查...")
		t.refreshJob(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc("0 0/40 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.refreshJob(ctx)
	})

	if err != nil {
		logger.Fatal("无法启动 Token 定时任务", zap.Error(err))
	}

	t.Cron.Start()
	logger.Info("Token 保活任务已启动 (每40分钟检查一次)")
}

// Stop 停止定时任务
func (t *TokenTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// 自动刷新逻辑
// GetValidToken 内部带 singleflight 与二次检查，任务与在线请求撞车时只会真正刷新一次
func (t *TokenTask) refreshJob(ctx context.Context) {
	integrations, err := t.IntegrationRepo.FindExpiring(ctx, t.expiryWindow)
	if err != nil {
		logger.Error("[Cron] 接入过期状态查询失败", zap.Error(err))
		return
	}

	// 1. 定义信号量通道，容量即为并发上限
	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	logger.Info("[Cron] 开始处理接入的 Token 保活",
		zap.Int("count", len(integrations)),
		zap.Int("concurrency", t.concurrencyLimit))

	for _, integration := range integrations {
		// 检查上下文是否已取消（超时处理）
		select {
		case <-ctx.Done():
			logger.Warn("[Cron] 任务超时停止")
			return
		default:
		}

		// 2. 获取信号量（如果已满则阻塞在此，起到限流作用）
		sem <- struct{}{}
		wg.Add(1)

		// 3. 平滑波峰
		time.Sleep(t.sleepTime)

		go func(it model.Integration) {
			defer wg.Done()
			defer func() { <-sem }() // 任务结束释放信号量

			// 执行核心业务
			if _, _, err := t.TokenService.GetValidToken(ctx, &it); err != nil {
				// 日志仅记录，不中断其他协程
				logger.Warn("[Cron] 接入 Token 刷新失败",
					zap.Int64("integration_id", it.ID),
					zap.Error(err))
			}
		}(integration)
	}

	// 4. 等待所有 Goroutine 完成
	wg.Wait()
	logger.Info("[Cron] 本轮 Token 保活任务完成")
}
