package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thingsinjars/MyHome-sub000/services"
	"github.com/thingsinjars/MyHome-sub000/services/container"
)

// InterfaceDocumentController 定义成员证件文档控制器接口
type InterfaceDocumentController interface {
	GetMemberDocument()
	UploadMemberDocument()
	RemoveMemberDocument()
}

// DocumentController 处理成员证件文档相关的请求
type DocumentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDocumentController 创建一个新的文档控制器
func NewDocumentController(ctx *gin.Context, container *container.ServiceContainer) *DocumentController {
	return &DocumentController{
		Ctx:       ctx,
		Container: container,
	}
}

// GetMemberDocument 获取成员的证件文档
// @Summary      获取成员证件文档
// @Description  下载指定成员的证件文档
// @Tags         Document
// @Produce      application/octet-stream
// @Param        memberId path string true "成员唯一标识"
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  ErrorResponse
// @Router       /members/{memberId}/documents [get]
func (c *DocumentController) GetMemberDocument() {
	memberUUID := c.Ctx.Param("memberId")

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	document, err := documentService.GetMemberDocument(memberUUID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) || errors.Is(err, services.ErrDocumentNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "成员或证件文档不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "获取证件文档失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.Header("Content-Disposition", "attachment; filename="+document.Filename)
	c.Ctx.Data(http.StatusOK, "application/octet-stream", document.Content)
}

// UploadMemberDocument 上传成员的证件文档
// @Summary      上传成员证件文档
// @Description  为成员上传证件文档，已有文档被新文档接替
// @Tags         Document
// @Accept       multipart/form-data
// @Produce      json
// @Param        memberId path string true "成员唯一标识"
// @Param        file formData file true "证件文件"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /members/{memberId}/documents [post]
func (c *DocumentController) UploadMemberDocument() {
	memberUUID := c.Ctx.Param("memberId")

	fileHeader, err := c.Ctx.FormFile("file")
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "缺少上传文件",
			"data":    nil,
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无法读取上传文件",
			"data":    nil,
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "读取上传文件失败",
			"data":    nil,
		})
		return
	}

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	document, err := documentService.AttachDocument(memberUUID, fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.Ctx.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": "成员不存在",
				"data":    nil,
			})
			return
		}
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "上传证件文档失败",
			"data":    nil,
		})
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "成功",
		"data": gin.H{
			"document_uuid": document.DocumentUUID,
			"filename":      document.Filename,
		},
	})
}

// RemoveMemberDocument 解绑成员的证件文档
// @Summary      删除成员证件文档
// @Description  解绑成员的证件文档，文档记录由后台清理任务删除
// @Tags         Document
// @Produce      json
// @Param        memberId path string true "成员唯一标识"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /members/{memberId}/documents [delete]
func (c *DocumentController) RemoveMemberDocument() {
	memberUUID := c.Ctx.Param("memberId")

	documentService := c.Container.GetService("document").(services.InterfaceDocumentService)
	removed, err := documentService.RemoveMemberDocument(memberUUID)
	if err != nil {
		c.Ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "删除证件文档失败",
			"data":    nil,
		})
		return
	}
	if !removed {
		c.Ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "成员或证件文档不存在",
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

// HandleDocumentFunc 返回一个处理证件文档请求的Gin处理函数
func HandleDocumentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDocumentController(ctx, container)

		switch method {
		case "getMemberDocument":
			controller.GetMemberDocument()
		case "uploadMemberDocument":
			controller.UploadMemberDocument()
		case "removeMemberDocument":
			controller.RemoveMemberDocument()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
