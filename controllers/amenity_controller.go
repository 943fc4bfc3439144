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

// InterfaceAmenityController 定义设施控制器接口
type InterfaceAmenityController interface {
	GetCommunityAmenities()
	AddAmenity()
	UpdateAmenity()
	DeleteAmenity()
}

// AmenityController 处理小区配套设施相关的请求
type AmenityController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAmenityController 创建一个新的设施控制器
func NewAmenityController(ctx *gin.Context, container *container.ServiceContainer) *AmenityController {
	return &AmenityController{
		Ctx:       ctx,
		Container: container,
	}
}

// AmenityRequest 表示添加设施请求
type AmenityRequest struct {
	Name        string `json:"name" binding:"required" example:"健身房"`
	Description string `json:"description" example:"位于3号楼一层"`
}

// UpdateAmenityRequest 表示更新设施请求
type UpdateAmenityRequest struct {
	Name        string `json:"name" example:"游泳池"`
	Description string `json:"description" example:"夏季开放"`
}

// GetCommunityAmenities 获取小区下的设施列表
// @Summary      获取小区设施列表
// @Description  获取小区下的设施列表。小区不存在返回404，存在但没有设施返回空列表
// @Tags         Amenity
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /communities/{id}/amenities [get]
func (c *AmenityController) GetCommunityAmenities() {
	communityUUID := c.Ctx.Param("id")
	page, pageSize := pagination(c.Ctx)

	amenityService := c.Container.GetService("amenity").(services.InterfaceAmenityService)
	amenities, total, err := amenityService.GetCommunityAmenities(communityUUID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrCommunityNotFound) {
			response.Fail(c.Ctx, code.ErrCommunityNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      amenities,
	})
}

// AddAmenity 向小区添加设施
// @Summary      添加小区设施
// @Description  向小区添加配套设施
// @Tags         Amenity
// @Accept       json
// @Produce      json
// @Param        id path string true "小区唯一标识"
// @Param        request body AmenityRequest true "设施请求参数"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /communities/{id}/amenities [post]
func (c *AmenityController) AddAmenity() {
	communityUUID := c.Ctx.Param("id")

	var req AmenityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	amenity := &models.Amenity{
		Name:        req.Name,
		Description: req.Description,
	}

	amenityService := c.Container.GetService("amenity").(services.InterfaceAmenityService)
	created, err := amenityService.AddAmenityToCommunity(communityUUID, amenity)
	if err != nil {
		if errors.Is(err, services.ErrCommunityNotFound) {
			response.Fail(c.Ctx, code.ErrCommunityNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, created)
}

// UpdateAmenity 更新设施信息
// @Summary      更新设施
// @Description  更新设施信息，归属小区不可变更
// @Tags         Amenity
// @Accept       json
// @Produce      json
// @Param        amenityId path string true "设施唯一标识"
// @Param        request body UpdateAmenityRequest true "更新设施请求参数"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /amenities/{amenityId} [put]
func (c *AmenityController) UpdateAmenity() {
	amenityUUID := c.Ctx.Param("amenityId")

	var req UpdateAmenityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	amenityService := c.Container.GetService("amenity").(services.InterfaceAmenityService)
	amenity, err := amenityService.UpdateAmenity(amenityUUID, updates)
	if err != nil {
		if errors.Is(err, services.ErrAmenityNotFound) {
			response.Fail(c.Ctx, code.ErrAmenityNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, amenity)
}

// DeleteAmenity 删除设施
// @Summary      删除设施
// @Description  删除小区配套设施
// @Tags         Amenity
// @Accept       json
// @Produce      json
// @Param        amenityId path string true "设施唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /amenities/{amenityId} [delete]
func (c *AmenityController) DeleteAmenity() {
	amenityUUID := c.Ctx.Param("amenityId")

	amenityService := c.Container.GetService("amenity").(services.InterfaceAmenityService)
	deleted, err := amenityService.DeleteAmenity(amenityUUID)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}
	if !deleted {
		response.Fail(c.Ctx, code.ErrAmenityNotFound, nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// HandleAmenityFunc 返回一个处理设施请求的Gin处理函数
func HandleAmenityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAmenityController(ctx, container)

		switch method {
		case "getCommunityAmenities":
			controller.GetCommunityAmenities()
		case "addAmenity":
			controller.AddAmenity()
		case "updateAmenity":
			controller.UpdateAmenity()
		case "deleteAmenity":
			controller.DeleteAmenity()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}
