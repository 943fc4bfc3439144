package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/services"
	"github.com/thingsinjars/MyHome-sub000/services/container"
)

// InterfaceHouseController 定义房屋控制器接口
type InterfaceHouseController interface {
	GetHouses()
	GetHouse()
	GetHouseMembers()
	AddMembers()
	RemoveMember()
	GetMembersForAdmin()
}

// HouseController 处理房屋相关的请求
type HouseController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHouseController 创建一个新的房屋控制器
func NewHouseController(ctx *gin.Context, container *container.ServiceContainer) *HouseController {
	return &HouseController{
		Ctx:       ctx,
		Container: container,
	}
}

// MemberRequest 表示添加成员的单个条目
type MemberRequest struct {
	Name  string `json:"name" binding:"required" example:"张三"`
	Phone string `json:"phone" example:"13812345678"`
}

// AddMembersRequest 表示批量添加成员请求
type AddMembersRequest struct {
	Members []MemberRequest `json:"members" binding:"required,dive"`
}

// GetHouses 获取所有房屋
// @Summary      获取房屋列表
// @Description  获取系统中所有房屋的列表
// @Tags         House
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /houses [get]
func (c *HouseController) GetHouses() {
	page, pageSize := pagination(c.Ctx)

	houseService := c.Container.GetService("house").(services.InterfaceHouseService)
	houses, total, err := houseService.GetAllHouses(page, pageSize)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取房屋列表失败",
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
			"data":        houses,
		},
	})
}

// GetHouse 获取房屋详情
// @Summary      获取房屋详情
// @Description  根据唯一标识获取房屋的详细信息，包含成员列表
// @Tags         House
// @Accept       json
// @Produce      json
// @Param        id path string true "房屋唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /houses/{id} [get]
func (c *HouseController) GetHouse() {
	houseUUID := c.Ctx.Param("id")

	houseService := c.Container.GetService("house").(services.InterfaceHouseService)
	house, err := houseService.GetHouseByUUID(houseUUID)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "房屋不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取房屋详情失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    house,
	})
}

// GetHouseMembers 获取房屋下的成员列表
// @Summary      获取房屋成员列表
// @Description  获取房屋下的成员列表。房屋不存在返回404，存在但没有成员返回空列表
// @Tags         House
// @Accept       json
// @Produce      json
// @Param        id path string true "房屋唯一标识"
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /houses/{id}/members [get]
func (c *HouseController) GetHouseMembers() {
	houseUUID := c.Ctx.Param("id")
	page, pageSize := pagination(c.Ctx)

	houseService := c.Container.GetService("house").(services.InterfaceHouseService)
	members, total, err := houseService.GetHouseMembers(houseUUID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "房屋不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取房屋成员列表失败",
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
			"data":      members,
		},
	})
}

// AddMembers 向房屋批量添加成员
// @Summary      添加房屋成员
// @Description  向房屋批量添加成员，每个成员都会分配新生成的唯一标识
// @Tags         House
// @Accept       json
// @Produce      json
// @Param        id path string true "房屋唯一标识"
// @Param        request body AddMembersRequest true "成员集合"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /houses/{id}/members [post]
func (c *HouseController) AddMembers() {
	houseUUID := c.Ctx.Param("id")

	var req AddMembersRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的请求参数",
			"data":    nil,
		})
		return
	}

	candidates := make([]models.HouseMember, 0, len(req.Members))
	for _, m := range req.Members {
		candidates = append(candidates, models.HouseMember{
			Name:  m.Name,
			Phone: m.Phone,
		})
	}

	houseService := c.Container.GetService("house").(services.InterfaceHouseService)
	saved, err := houseService.AddHouseMembers(houseUUID, candidates)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "添加成员失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"members": saved,
		},
	})
}

// RemoveMember 将成员从房屋移除
// @Summary      移除房屋成员
// @Description  将成员从房屋移除，成员记录保留但不再关联任何房屋
// @Tags         House
// @Accept       json
// @Produce      json
// @Param        id path string true "房屋唯一标识"
// @Param        memberId path string true "成员唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /houses/{id}/members/{memberId} [delete]
func (c *HouseController) RemoveMember() {
	houseUUID := c.Ctx.Param("id")
	memberUUID := c.Ctx.Param("memberId")

	houseService := c.Container.GetService("house").(services.InterfaceHouseService)
	removed, err := houseService.DeleteMemberFromHouse(houseUUID, memberUUID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "移除成员失败",
			"data":    nil,
		})
		return
	}
	if !removed {
		c.Ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "房屋不存在或成员不属于该房屋",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data":    nil,
	})
}

// GetMembersForAdmin 获取当前管理员所管理小区下的所有成员
// @Summary      获取管理员名下成员列表
// @Description  获取当前登录管理员所管理小区下所有房屋的成员列表
// @Tags         House
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /members [get]
func (c *HouseController) GetMembersForAdmin() {
	page, pageSize := pagination(c.Ctx)

	requestingUserUUID, _ := c.Ctx.Get("userUUID")
	userUUID, _ := requestingUserUUID.(string)

	houseService := c.Container.GetService("house").(services.InterfaceHouseService)
	members, total, err := houseService.ListMembersForAdminUser(userUUID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "用户不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取成员列表失败",
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
			"data":      members,
		},
	})
}

// HandleHouseFunc 返回一个处理房屋请求的Gin处理函数
func HandleHouseFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHouseController(ctx, container)

		switch method {
		case "getHouses":
			controller.GetHouses()
		case "getHouse":
			controller.GetHouse()
		case "getHouseMembers":
			controller.GetHouseMembers()
		case "addMembers":
			controller.AddMembers()
		case "removeMember":
			controller.RemoveMember()
		case "getMembersForAdmin":
			controller.GetMembersForAdmin()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
