package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/thingsinjars/MyHome-sub000/internal/error/code"
	"github.com/thingsinjars/MyHome-sub000/internal/error/response"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/services"
	"github.com/thingsinjars/MyHome-sub000/services/container"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	GetUserCommunities()
}

// UserController 处理用户相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest 表示创建用户请求
type UserRequest struct {
	Username string `json:"username" binding:"required" example:"zhangsan"`
	Password string `json:"password" binding:"required" example:"secret123"`
	Email    string `json:"email" binding:"omitempty,email" example:"zhangsan@example.com"`
	Phone    string `json:"phone" example:"13812345678"`
	Role     string `json:"role" example:"user"`
}

// UpdateUserRequest 表示更新用户请求
type UpdateUserRequest struct {
	Username string `json:"username" example:"lisi"`
	Password string `json:"password" example:""`
	Email    string `json:"email" binding:"omitempty,email" example:"lisi@example.com"`
	Phone    string `json:"phone" example:"13987654321"`
}

// GetUsers 获取所有用户
// @Summary      获取用户列表
// @Description  获取系统中所有用户的列表
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
func (c *UserController) GetUsers() {
	page, pageSize := pagination(c.Ctx)

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.GetAllUsers(page, pageSize)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		"data":        users,
	})
}

// GetUser 获取单个用户
// @Summary      获取用户详情
// @Description  根据唯一标识获取用户的详细信息
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path string true "用户唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (c *UserController) GetUser() {
	userUUID := c.Ctx.Param("id")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByUUID(userUUID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, user)
}

// CreateUser 创建新用户
// @Summary      创建用户
// @Description  创建新用户
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body UserRequest true "创建用户请求参数"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users [post]
func (c *UserController) CreateUser() {
	var req UserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrUserAlreadyExist, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// UpdateUser 更新用户信息
// @Summary      更新用户
// @Description  更新用户信息
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path string true "用户唯一标识"
// @Param        request body UpdateUserRequest true "更新用户请求参数"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [put]
func (c *UserController) UpdateUser() {
	userUUID := c.Ctx.Param("id")

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Password != "" {
		updates["password"] = req.Password
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(userUUID, updates)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error(), nil)
		return
	}

	response.Success(c.Ctx, user)
}

// GetUserCommunities 获取用户管理的小区集合
// @Summary      获取用户管理的小区
// @Description  获取指定用户管理的小区集合
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path string true "用户唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id}/communities [get]
func (c *UserController) GetUserCommunities() {
	userUUID := c.Ctx.Param("id")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByUUIDWithCommunities(userUUID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.Fail(c.Ctx, code.ErrUserNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"communities": user.Communities,
	})
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "getUserCommunities":
			controller.GetUserCommunities()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}
