package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adrian140/prep-center-sub001/internal/config"
	"github.com/Adrian140/prep-center-sub001/internal/controller"
	"github.com/Adrian140/prep-center-sub001/internal/middleware"
	"github.com/Adrian140/prep-center-sub001/internal/model"
	"github.com/Adrian140/prep-center-sub001/internal/repository"
	"github.com/Adrian140/prep-center-sub001/internal/router"
	"github.com/Adrian140/prep-center-sub001/internal/service"
	"github.com/Adrian140/prep-center-sub001/internal/task"
	"github.com/Adrian140/prep-center-sub001/pkg/database"
	"github.com/Adrian140/prep-center-sub001/pkg/logger"
	"github.com/Adrian140/prep-center-sub001/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Prep Center UPS 打单服务
// @version 1.0
// @description UPS 面单签发、Token 保活与账单管理后端
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 读取配置（缺失关键配置或加密密钥太弱会在这里直接退出）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()

	// 3. 初始化数据库
	db := initDatabase(cfg)

	// 4. 初始化依赖
	deps := initDependencies(cfg, db)

	// 5. 启动定时任务
	deps.TokenTask.Start()
	defer deps.TokenTask.Stop()

	// 6. 初始化路由
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.User,
		deps.Controllers.Order,
		deps.Controllers.Label,
		deps.Controllers.Integration,
		deps.Controllers.Invoice)

	// 7. 启动服务
	startServer(r, cfg.Server.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	TokenTask   *task.TokenTask
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Order       repository.OrderRepository
	Integration repository.IntegrationRepository
	Invoice     repository.InvoiceRepository
}

// Services 服务集合
type Services struct {
	User        *service.UserService
	Order       *service.OrderService
	Token       *service.TokenService
	Label       *service.LabelService
	Integration *service.IntegrationService
	Invoice     *service.InvoiceService
}

// Controllers 控制器集合
type Controllers struct {
	User        *controller.UserController
	Order       *controller.OrderController
	Label       *controller.LabelController
	Integration *controller.IntegrationController
	Invoice     *controller.InvoiceController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.MustInitDB(cfg.Database.DSN,
		// Manager
		&model.SysUser{},
		// Shipping
		&model.ShippingOrder{},
		// UPS
		&model.Integration{}, &model.InvoiceFile{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- JWT 配置 --------
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// -------- Repo 层 --------
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Order:       repository.NewOrderRepository(db),
		Integration: repository.NewIntegrationRepository(db),
		Invoice:     repository.NewInvoiceRepository(db),
	}

	// -------- 基础组件 --------
	cipher, err := utils.NewTokenCipher(cfg.Encryption.Secret)
	if err != nil {
		logger.Fatal("Token 加密器初始化失败", zap.Error(err))
	}

	upsClient := service.NewUPSClient(service.UPSConfig{
		BaseURL:      cfg.UPS.BaseURL,
		ClientID:     cfg.UPS.ClientID,
		ClientSecret: cfg.UPS.ClientSecret,
		Timeout:      cfg.UPS.Timeout,
	})

	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		BasePath:  cfg.Storage.BasePath,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("存储初始化失败", zap.Error(err))
	}

	// -------- Service 层 --------
	tokenSvc := service.NewTokenService(repos.Integration, upsClient, cipher)
	services := &Services{
		User:        service.NewUserService(repos.User),
		Order:       service.NewOrderService(repos.Order, repos.User),
		Token:       tokenSvc,
		Label:       service.NewLabelService(repos.Order, repos.Integration, repos.Invoice, repos.User, tokenSvc, upsClient, storage),
		Integration: service.NewIntegrationService(repos.Integration, repos.User, tokenSvc),
		Invoice:     service.NewInvoiceService(repos.Invoice, repos.Integration, repos.User),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		User:        controller.NewUserController(services.User),
		Order:       controller.NewOrderController(services.Order),
		Label:       controller.NewLabelController(services.Label),
		Integration: controller.NewIntegrationController(services.Integration),
		Invoice:     controller.NewInvoiceController(services.Invoice),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		TokenTask:   task.NewTokenTask(repos.Integration, tokenSvc),
	}
}

// startServer 启动 HTTP 服务并处理优雅退出
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("服务已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("收到退出信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务关闭异常", zap.Error(err))
	}
	logger.Info("服务已退出")
}
