package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/services"
	"github.com/thingsinjars/MyHome-sub000/services/container"
)

// InterfaceCommunityController 定义小区控制器接口
type InterfaceCommunityController interface {
	GetCommunities()
	GetCommunity()
	CreateCommunity()
	GetCommunityHouses()
	GetCommunityAdmins()
	AddAdmins()
	AddHouses()
	RemoveHouse()
	RemoveAdmin()
	DeleteCommunity()
}

// CommunityController 处理小区相关的请求
type CommunityController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCommunityController 创建一个新的小区控制器
func NewCommunityController(ctx *gin.Context, container *container.ServiceContainer) *CommunityController {
	return &CommunityController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateCommunityRequest 表示创建小区请求
type CreateCommunityRequest struct {
	Name     string `json:"name" binding:"required" example:"枫叶花园"`
	District string `json:"district" example:"北区"`
}

// AddAdminsRequest 表示批量添加管理员请求
type AddAdminsRequest struct {
	AdminUUIDs []string `json:"admin_uuids" binding:"required" example:"3f1d..,7a2c.."`
}

// HouseRequest 表示添加房屋的单个条目
type HouseRequest struct {
	HouseUUID string `json:"house_uuid" example:""` // 重提交已返回过的房屋时携带
	Name      string `json:"name" binding:"required" example:"1号楼101"`
}

// AddHousesRequest 表示批量添加房屋请求
type AddHousesRequest struct {
	Houses []HouseRequest `json:"houses" binding:"required,dive"`
}

// pagination 解析分页查询参数
func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// GetCommunities 获取所有小区
// @Summary      获取小区列表
// @Description  获取系统中所有小区的列表
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /communities [get]
func (c *CommunityController) GetCommunities() {
	page, pageSize := pagination(c.Ctx)

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	communities, total, err := communityService.GetAllCommunities(page, pageSize)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取小区列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
			"data":        communities,
		},
	})
}

// GetCommunity 获取单个小区详情
// @Summary      获取小区详情
// @Description  根据唯一标识获取小区的详细信息，包含房屋、管理员和设施
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /communities/{id} [get]
func (c *CommunityController) GetCommunity() {
	communityUUID := c.Ctx.Param("id")

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	redisService := c.Container.GetService("redis").(*services.RedisService)

	// 首先尝试从缓存获取
	var cachedCommunity models.Community
	if err := redisService.GetCachedCommunity(communityUUID, &cachedCommunity); err == nil {
		// 在缓存中找到
		c.Ctx.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "成功",
			"data":    cachedCommunity,
		})
		return
	}

	community, err := communityService.GetCommunityByUUID(communityUUID)
	if err != nil {
		if errors.Is(err, services.ErrCommunityNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "小区不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取小区详情失败",
			"data":    nil,
		})
		return
	}

	// 缓存10分钟，层级变更时主动失效
	redisService.CacheCommunity(communityUUID, community, 10*time.Minute)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    community,
	})
}

// CreateCommunity 创建新小区
// @Summary      创建小区
// @Description  创建新小区，当前登录用户成为首位管理员
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        request body CreateCommunityRequest true "创建小区请求参数"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /communities [post]
func (c *CommunityController) CreateCommunity() {
	var req CreateCommunityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	// 发起用户由认证中间件解析后放入上下文，作为显式参数传给服务层
	requestingUserUUID, _ := c.Ctx.Get("userUUID")
	userUUID, _ := requestingUserUUID.(string)

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	community, err := communityService.CreateCommunity(req.Name, req.District, userUUID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "创建小区失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    community,
	})
}

// GetCommunityHouses 获取小区下的房屋列表
// @Summary      获取小区房屋列表
// @Description  获取指定小区下的房屋列表。小区不存在返回404，存在但没有房屋返回空列表
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /communities/{id}/houses [get]
func (c *CommunityController) GetCommunityHouses() {
	communityUUID := c.Ctx.Param("id")
	page, pageSize := pagination(c.Ctx)

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	houses, total, err := communityService.GetCommunityHouses(communityUUID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrCommunityNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "小区不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取小区房屋列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"total":     total,
			"page":      page,
			"page_size": pageSize,
			"data":      houses,
		},
	})
}

// GetCommunityAdmins 获取小区的管理员列表
// @Summary      获取小区管理员列表
// @Description  获取指定小区的管理员列表。小区不存在返回404，存在但没有管理员返回空列表
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /communities/{id}/admins [get]
func (c *CommunityController) GetCommunityAdmins() {
	communityUUID := c.Ctx.Param("id")
	page, pageSize := pagination(c.Ctx)

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	admins, total, err := communityService.GetCommunityAdmins(communityUUID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrCommunityNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "小区不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取小区管理员列表失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"total":     total,
			"page":      page,
			"page_size": pageSize,
			"data":      admins,
		},
	})
}

// AddAdmins 向小区批量添加管理员
// @Summary      添加小区管理员
// @Description  向小区批量添加管理员，无法解析的用户标识被静默跳过
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        request body AddAdminsRequest true "管理员标识集合"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /communities/{id}/admins [post]
func (c *CommunityController) AddAdmins() {
	communityUUID := c.Ctx.Param("id")

	var req AddAdminsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	community, err := communityService.AddAdminsToCommunity(communityUUID, req.AdminUUIDs)
	if err != nil {
		if errors.Is(err, services.ErrCommunityNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "小区不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "添加管理员失败",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(*services.RedisService)
	redisService.InvalidateCommunity(communityUUID)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    community,
	})
}

// AddHouses 向小区批量添加房屋
// @Summary      添加小区房屋
// @Description  向小区批量添加房屋，返回新生成的房屋标识集合
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        request body AddHousesRequest true "房屋集合"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /communities/{id}/houses [post]
func (c *CommunityController) AddHouses() {
	communityUUID := c.Ctx.Param("id")

	var req AddHousesRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	candidates := make([]models.CommunityHouse, 0, len(req.Houses))
	for _, h := range req.Houses {
		candidates = append(candidates, models.CommunityHouse{
			HouseUUID: h.HouseUUID,
			Name:      h.Name,
		})
	}

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	addedUUIDs, err := communityService.AddHousesToCommunity(communityUUID, candidates)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "添加房屋失败",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(*services.RedisService)
	redisService.InvalidateCommunity(communityUUID)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"house_uuids": addedUUIDs,
		},
	})
}

// RemoveHouse 从小区移除房屋
// @Summary      移除小区房屋
// @Description  从小区移除房屋，房屋下的成员全部脱离房屋但记录保留
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        houseId path string true "房屋唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /communities/{id}/houses/{houseId} [delete]
func (c *CommunityController) RemoveHouse() {
	communityUUID := c.Ctx.Param("id")
	houseUUID := c.Ctx.Param("houseId")

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	removed, err := communityService.RemoveHouseFromCommunity(communityUUID, houseUUID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "移除房屋失败",
			"data":    nil,
		})
		return
	}
	if !removed {
		c.Ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "小区或房屋不存在",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(*services.RedisService)
	redisService.InvalidateCommunity(communityUUID)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// RemoveAdmin 从小区移除管理员
// @Summary      移除小区管理员
// @Description  从小区的管理员集合中移除指定用户
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        adminId path string true "管理员用户唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /communities/{id}/admins/{adminId} [delete]
func (c *CommunityController) RemoveAdmin() {
	communityUUID := c.Ctx.Param("id")
	adminUUID := c.Ctx.Param("adminId")

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	removed, err := communityService.RemoveAdminFromCommunity(communityUUID, adminUUID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "移除管理员失败",
			"data":    nil,
		})
		return
	}
	if !removed {
		c.Ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "小区不存在或该用户不是小区管理员",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(*services.RedisService)
	redisService.InvalidateCommunity(communityUUID)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// DeleteCommunity 删除小区
// @Summary      删除小区
// @Description  删除小区并级联拆除其下所有房屋，成员记录保留
// @Tags         Community
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /communities/{id} [delete]
func (c *CommunityController) DeleteCommunity() {
	communityUUID := c.Ctx.Param("id")

	communityService := c.Container.GetService("community").(services.InterfaceCommunityService)
	deleted, err := communityService.DeleteCommunity(communityUUID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除小区失败",
			"data":    nil,
		})
		return
	}
	if !deleted {
		c.Ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "小区不存在",
			"data":    nil,
		})
		return
	}

	redisService := c.Container.GetService("redis").(*services.RedisService)
	redisService.InvalidateCommunity(communityUUID)

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// HandleCommunityFunc 返回一个处理小区请求的Gin处理函数
func HandleCommunityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCommunityController(ctx, container)

		switch method {
		case "getCommunities":
			controller.GetCommunities()
		case "getCommunity":
			controller.GetCommunity()
		case "createCommunity":
			controller.CreateCommunity()
		case "getCommunityHouses":
			controller.GetCommunityHouses()
		case "getCommunityAdmins":
			controller.GetCommunityAdmins()
		case "addAdmins":
			controller.AddAdmins()
		case "addHouses":
			controller.AddHouses()
		case "removeHouse":
			controller.RemoveHouse()
		case "removeAdmin":
			controller.RemoveAdmin()
		case "deleteCommunity":
			controller.DeleteCommunity()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
