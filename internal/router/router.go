package router

import (
	_ "github.com/Adrian140/prep-center-sub001/docs" // swagger 文档
	"github.com/Adrian140/prep-center-sub001/internal/controller"
	"github.com/Adrian140/prep-center-sub001/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	userCtl *controller.UserController,
	orderCtl *controller.OrderController,
	labelCtl *controller.LabelController,
	integrationCtl *controller.IntegrationController,
	invoiceCtl *controller.InvoiceController) {
	// 1. 全局中间件
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
	}))

	// 2. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 3. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组（无需登录）
		auth := api.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", userCtl.Login)
			// POST /api/auth/refresh
			auth.POST("/refresh", userCtl.Refresh)
		}

		// 以下路由全部要求登录，401 在中间件里就拦下
		authed := api.Group("")
		authed.Use(middleware.JWTAuth())
		{
			// users 用户组
			authed.GET("/users/me", userCtl.Me)

			// orders 订单组
			orders := authed.Group("/orders")
			{
				orders.POST("", orderCtl.Create)
				orders.GET("", orderCtl.List)
				orders.GET("/:id", orderCtl.Get)
			}

			// labels 打单组
			labels := authed.Group("/labels")
			{
				// POST /api/labels
				labels.POST("", labelCtl.Create)
				// POST /api/labels/:order_id/void
				labels.POST("/:order_id/void", labelCtl.Void)
			}

			// integrations 接入组
			integrations := authed.Group("/integrations")
			{
				integrations.POST("", integrationCtl.Create)
				integrations.GET("", integrationCtl.List)
				integrations.GET("/:id", integrationCtl.Get)
				integrations.POST("/:id/test", integrationCtl.TestConnection)
			}

			// invoices 账单组
			invoices := authed.Group("/invoices")
			{
				invoices.GET("", invoiceCtl.List)
				invoices.GET("/order/:order_id", invoiceCtl.GetByOrder)
			}
		}
	}
}
