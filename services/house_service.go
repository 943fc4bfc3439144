package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// InterfaceHouseService 定义房屋服务接口
type InterfaceHouseService interface {
	GetAllHouses(page, pageSize int) ([]models.CommunityHouse, int64, error)
	GetHouseByUUID(houseUUID string) (*models.CommunityHouse, error)
	GetHouseMembers(houseUUID string, page, pageSize int) ([]models.HouseMember, int64, error)
	AddHouseMembers(houseUUID string, members []models.HouseMember) ([]models.HouseMember, error)
	DeleteMemberFromHouse(houseUUID, memberUUID string) (bool, error)
	DetachMemberTx(tx *gorm.DB, member *models.HouseMember) error
	ListMembersForAdminUser(userUUID string, page, pageSize int) ([]models.HouseMember, int64, error)
}

// HouseService 提供房屋相关的服务
type HouseService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHouseService 创建一个新的房屋服务
func NewHouseService(db *gorm.DB, cfg *config.Config) InterfaceHouseService {
	return &HouseService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllHouses 获取所有房屋列表，支持分页
func (s *HouseService) GetAllHouses(page, pageSize int) ([]models.CommunityHouse, int64, error) {
	var houses []models.CommunityHouse
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.CommunityHouse{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Preload("Community").Limit(pageSize).Offset(offset).Find(&houses).Error; err != nil {
		return nil, 0, err
	}

	return houses, total, nil
}

// 2. GetHouseByUUID 根据唯一标识获取房屋详情，包含成员列表
func (s *HouseService) GetHouseByUUID(houseUUID string) (*models.CommunityHouse, error) {
	var house models.CommunityHouse
	if err := s.DB.Preload("Community").Preload("Members").Where("house_uuid = ?", houseUUID).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return &house, nil
}

// 3. GetHouseMembers 获取房屋下的成员列表，支持分页。
// 房屋不存在时返回 ErrHouseNotFound，存在但没有成员时返回空列表。
func (s *HouseService) GetHouseMembers(houseUUID string, page, pageSize int) ([]models.HouseMember, int64, error) {
	var house models.CommunityHouse
	if err := s.DB.Where("house_uuid = ?", houseUUID).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrHouseNotFound
		}
		return nil, 0, err
	}

	var members []models.HouseMember
	var total int64

	if err := s.DB.Model(&models.HouseMember{}).Where("house_id = ?", house.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("house_id = ?", house.ID).Limit(pageSize).Offset(offset).Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// 4. AddHouseMembers 向房屋批量添加成员。
// 房屋不存在时返回空列表且不报错。每个成员都会被分配新生成的唯一标识，
// 调用方传入的标识一律被覆盖。
func (s *HouseService) AddHouseMembers(houseUUID string, candidates []models.HouseMember) ([]models.HouseMember, error) {
	var house models.CommunityHouse
	if err := s.DB.Where("house_uuid = ?", houseUUID).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.HouseMember{}, nil
		}
		return nil, err
	}

	saved := make([]models.HouseMember, 0, len(candidates))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range candidates {
			member := candidates[i]
			member.ID = 0
			member.MemberUUID = utils.NewUUID()
			member.HouseID = &house.ID

			if err := tx.Create(&member).Error; err != nil {
				return err
			}
			saved = append(saved, member)
		}
		// 成员集合已变化，房屋跟着保存一次
		return touchParentTx(tx, &house)
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// 5. DeleteMemberFromHouse 将成员从房屋移除。
// 只清空成员的房屋引用，成员记录保留（历史账单仍然指向该成员）。
// 房屋不存在或成员不在该房屋下时返回 false 且不报错。
func (s *HouseService) DeleteMemberFromHouse(houseUUID, memberUUID string) (bool, error) {
	var house models.CommunityHouse
	if err := s.DB.Where("house_uuid = ?", houseUUID).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var member models.HouseMember
	if err := s.DB.Where("member_uuid = ? AND house_id = ?", memberUUID, house.ID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.DetachMemberTx(tx, &member); err != nil {
			return err
		}
		return touchParentTx(tx, &house)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// 6. DetachMemberTx 在事务中清空成员的房屋引用。
// 这是唯一的成员脱离路径：直接的移除请求和小区级联删除都必须走这里。
func (s *HouseService) DetachMemberTx(tx *gorm.DB, member *models.HouseMember) error {
	member.HouseID = nil
	return tx.Model(&models.HouseMember{}).Where("id = ?", member.ID).Update("house_id", nil).Error
}

// 7. ListMembersForAdminUser 获取某管理员所管理小区下所有房屋的成员列表。
// 用户不存在时返回 ErrUserNotFound。
func (s *HouseService) ListMembersForAdminUser(userUUID string, page, pageSize int) ([]models.HouseMember, int64, error) {
	var user models.User
	if err := s.DB.Where("user_uuid = ?", userUUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	var total int64
	if err := s.DB.Model(&models.HouseMember{}).
		Joins("JOIN community_houses ON community_houses.id = house_members.house_id").
		Joins("JOIN community_admin_relations ON community_admin_relations.community_id = community_houses.community_id").
		Where("community_admin_relations.user_id = ?", user.ID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.HouseMember
	offset := (page - 1) * pageSize
	if err := s.DB.Model(&models.HouseMember{}).
		Joins("JOIN community_houses ON community_houses.id = house_members.house_id").
		Joins("JOIN community_admin_relations ON community_admin_relations.community_id = community_houses.community_id").
		Where("community_admin_relations.user_id = ?", user.ID).
		Limit(pageSize).Offset(offset).Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}
