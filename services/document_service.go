package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// InterfaceDocumentService 定义成员证件文档服务接口
type InterfaceDocumentService interface {
	GetMemberDocument(memberUUID string) (*models.HouseMemberDocument, error)
	AttachDocument(memberUUID, filename string, content []byte) (*models.HouseMemberDocument, error)
	RemoveMemberDocument(memberUUID string) (bool, error)
	PurgeDocument(documentUUID string) (bool, error)
}

// DocumentService 提供成员证件文档相关的服务。
// 文档与成员一对一：解绑只清空成员侧的引用，文档记录由 PurgeDocument 显式删除。
type DocumentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDocumentService 创建一个新的文档服务
func NewDocumentService(db *gorm.DB, cfg *config.Config) InterfaceDocumentService {
	return &DocumentService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetMemberDocument 获取成员的证件文档。
// 成员不存在时返回 ErrMemberNotFound，成员存在但没有文档时返回 ErrDocumentNotFound。
func (s *DocumentService) GetMemberDocument(memberUUID string) (*models.HouseMemberDocument, error) {
	var member models.HouseMember
	if err := s.DB.Preload("Document").Where("member_uuid = ?", memberUUID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if member.Document == nil {
		return nil, ErrDocumentNotFound
	}

	return member.Document, nil
}

// 2. AttachDocument 为成员创建并关联证件文档。
// 成员已有文档时旧文档被解绑（记录保留，由显式清除操作删除），新文档接替。
func (s *DocumentService) AttachDocument(memberUUID, filename string, content []byte) (*models.HouseMemberDocument, error) {
	var member models.HouseMember
	if err := s.DB.Where("member_uuid = ?", memberUUID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	document := &models.HouseMemberDocument{
		DocumentUUID: utils.NewUUID(),
		Filename:     filename,
		Content:      content,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(document).Error; err != nil {
			return err
		}
		return tx.Model(&models.HouseMember{}).Where("id = ?", member.ID).Update("document_id", document.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return document, nil
}

// 3. RemoveMemberDocument 解绑成员的证件文档，只清空引用。
// 成员不存在或没有文档时返回 false 且不报错。
func (s *DocumentService) RemoveMemberDocument(memberUUID string) (bool, error) {
	var member models.HouseMember
	if err := s.DB.Where("member_uuid = ?", memberUUID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if member.DocumentID == nil {
		return false, nil
	}

	if err := s.DB.Model(&models.HouseMember{}).Where("id = ?", member.ID).Update("document_id", nil).Error; err != nil {
		return false, err
	}

	return true, nil
}

// 4. PurgeDocument 删除文档记录本身，解绑后由运维或定时清理调用。
// 仍被成员引用的文档先解除引用再删除。
func (s *DocumentService) PurgeDocument(documentUUID string) (bool, error) {
	var document models.HouseMemberDocument
	if err := s.DB.Where("document_uuid = ?", documentUUID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.HouseMember{}).Where("document_id = ?", document.ID).Update("document_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.HouseMemberDocument{}, document.ID).Error
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
