package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/controllers"
	"github.com/thingsinjars/MyHome-sub000/middleware"
	"github.com/thingsinjars/MyHome-sub000/services/container"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:20033")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	middleware.SetCacheRedisClient(redisClient)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	healthController := controllers.NewHealthCheckController(container)

	// 健康检查
	api.GET("/ping", healthController.Ping)
	api.GET("/health", healthController.Status)

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的读路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 普通用户和管理员均可访问
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateUser())
	// 读接口启用限流和响应缓存
	auth.Use(middleware.RateLimiter())
	cached := middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second})

	// 小区读路由
	auth.Group("/communities").GET("", cached, controllers.HandleCommunityFunc(container, "getCommunities"))
	auth.Group("/communities").GET("/:id", cached, controllers.HandleCommunityFunc(container, "getCommunity"))
	auth.Group("/communities").GET("/:id/houses", cached, controllers.HandleCommunityFunc(container, "getCommunityHouses"))
	auth.Group("/communities").GET("/:id/admins", cached, controllers.HandleCommunityFunc(container, "getCommunityAdmins"))
	auth.Group("/communities").GET("/:id/amenities", cached, controllers.HandleAmenityFunc(container, "getCommunityAmenities"))

	// 房屋读路由
	auth.Group("/houses").GET("", cached, controllers.HandleHouseFunc(container, "getHouses"))
	auth.Group("/houses").GET("/:id", cached, controllers.HandleHouseFunc(container, "getHouse"))
	auth.Group("/houses").GET("/:id/members", controllers.HandleHouseFunc(container, "getHouseMembers"))

	// 住户成员路由。列表接口返回当前管理员所辖小区内的全部成员
	auth.Group("/members").GET("", controllers.HandleHouseFunc(container, "getMembersForAdmin"))
	auth.Group("/members").GET("/:memberId/documents", controllers.HandleDocumentFunc(container, "getMemberDocument"))
}

// registerAdminRoutes 注册仅限系统管理员的写路由
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateSystemAdmin())

	// 小区写路由
	admin.Group("/communities").POST("", controllers.HandleCommunityFunc(container, "createCommunity"))
	admin.Group("/communities").DELETE("/:id", controllers.HandleCommunityFunc(container, "deleteCommunity"))
	admin.Group("/communities").POST("/:id/admins", controllers.HandleCommunityFunc(container, "addAdmins"))
	admin.Group("/communities").DELETE("/:id/admins/:adminId", controllers.HandleCommunityFunc(container, "removeAdmin"))
	admin.Group("/communities").POST("/:id/houses", controllers.HandleCommunityFunc(container, "addHouses"))
	admin.Group("/communities").DELETE("/:id/houses/:houseId", controllers.HandleCommunityFunc(container, "removeHouse"))
	admin.Group("/communities").POST("/:id/amenities", controllers.HandleAmenityFunc(container, "addAmenity"))

	// 设施写路由
	admin.Group("/amenities").PUT("/:amenityId", controllers.HandleAmenityFunc(container, "updateAmenity"))
	admin.Group("/amenities").DELETE("/:amenityId", controllers.HandleAmenityFunc(container, "deleteAmenity"))

	// 房屋成员写路由
	admin.Group("/houses").POST("/:id/members", controllers.HandleHouseFunc(container, "addMembers"))
	admin.Group("/houses").DELETE("/:id/members/:memberId", controllers.HandleHouseFunc(container, "removeMember"))

	// 成员证件写路由
	admin.Group("/members").POST("/:memberId/documents", controllers.HandleDocumentFunc(container, "uploadMemberDocument"))
	admin.Group("/members").DELETE("/:memberId/documents", controllers.HandleDocumentFunc(container, "removeMemberDocument"))

	// 用户管理路由
	admin.Group("/users").GET("", controllers.HandleUserFunc(container, "getUsers"))
	admin.Group("/users").GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	admin.Group("/users").POST("", controllers.HandleUserFunc(container, "createUser"))
	admin.Group("/users").PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	admin.Group("/users").GET("/:id/communities", controllers.HandleUserFunc(container, "getUserCommunities"))
}
