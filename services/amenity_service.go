package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// InterfaceAmenityService 定义小区配套设施服务接口
type InterfaceAmenityService interface {
	GetCommunityAmenities(communityUUID string, page, pageSize int) ([]models.Amenity, int64, error)
	AddAmenityToCommunity(communityUUID string, amenity *models.Amenity) (*models.Amenity, error)
	UpdateAmenity(amenityUUID string, updates map[string]interface{}) (*models.Amenity, error)
	DeleteAmenity(amenityUUID string) (bool, error)
}

// AmenityService 提供小区配套设施相关的服务
type AmenityService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAmenityService 创建一个新的设施服务
func NewAmenityService(db *gorm.DB, cfg *config.Config) InterfaceAmenityService {
	return &AmenityService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetCommunityAmenities 获取小区下的设施列表，支持分页。
// 小区不存在时返回 ErrCommunityNotFound，存在但没有设施时返回空列表。
func (s *AmenityService) GetCommunityAmenities(communityUUID string, page, pageSize int) ([]models.Amenity, int64, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCommunityNotFound
		}
		return nil, 0, err
	}

	var amenities []models.Amenity
	var total int64

	if err := s.DB.Model(&models.Amenity{}).Where("community_id = ?", community.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("community_id = ?", community.ID).Limit(pageSize).Offset(offset).Find(&amenities).Error; err != nil {
		return nil, 0, err
	}

	return amenities, total, nil
}

// 2. AddAmenityToCommunity 向小区添加设施
func (s *AmenityService) AddAmenityToCommunity(communityUUID string, amenity *models.Amenity) (*models.Amenity, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}

	amenity.ID = 0
	amenity.AmenityUUID = utils.NewUUID()
	amenity.CommunityID = community.ID

	if err := s.DB.Create(amenity).Error; err != nil {
		return nil, err
	}

	return amenity, nil
}

// 3. UpdateAmenity 更新设施信息
func (s *AmenityService) UpdateAmenity(amenityUUID string, updates map[string]interface{}) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := s.DB.Where("amenity_uuid = ?", amenityUUID).First(&amenity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmenityNotFound
		}
		return nil, err
	}

	// 归属小区创建后不可变更
	delete(updates, "community_id")

	if err := s.DB.Model(&amenity).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &amenity, nil
}

// 4. DeleteAmenity 删除设施。设施不存在时返回 false 且不报错。
func (s *AmenityService) DeleteAmenity(amenityUUID string) (bool, error) {
	var amenity models.Amenity
	if err := s.DB.Where("amenity_uuid = ?", amenityUUID).First(&amenity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.DB.Delete(&models.Amenity{}, amenity.ID).Error; err != nil {
		return false, err
	}

	return true, nil
}
