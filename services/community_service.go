package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// InterfaceCommunityService 定义小区服务接口
type InterfaceCommunityService interface {
	CreateCommunity(name, district, requestingUserUUID string) (*models.Community, error)
	GetAllCommunities(page, pageSize int) ([]models.Community, int64, error)
	GetCommunityByUUID(communityUUID string) (*models.Community, error)
	GetCommunityHouses(communityUUID string, page, pageSize int) ([]models.CommunityHouse, int64, error)
	GetCommunityAdmins(communityUUID string, page, pageSize int) ([]models.User, int64, error)
	AddAdminsToCommunity(communityUUID string, userUUIDs []string) (*models.Community, error)
	AddHousesToCommunity(communityUUID string, houses []models.CommunityHouse) ([]string, error)
	RemoveHouseFromCommunity(communityUUID, houseUUID string) (bool, error)
	RemoveAdminFromCommunity(communityUUID, adminUUID string) (bool, error)
	DeleteCommunity(communityUUID string) (bool, error)
}

// CommunityService 提供小区相关的服务。
// 小区是层级结构的顶层：小区 → 房屋 → 成员。所有级联变更从这里发起，
// 成员的脱离统一走 HouseService 的脱离路径。
type CommunityService struct {
	DB           *gorm.DB
	Config       *config.Config
	HouseService InterfaceHouseService
}

// NewCommunityService 创建一个新的小区服务
func NewCommunityService(db *gorm.DB, cfg *config.Config, houseService InterfaceHouseService) InterfaceCommunityService {
	return &CommunityService{
		DB:           db,
		Config:       cfg,
		HouseService: houseService,
	}
}

// 1. CreateCommunity 创建新小区。
// 发起请求的用户作为小区的首位管理员；用户无法解析时小区照常创建、
// 管理员集合为空（调用方不会收到错误）。
func (s *CommunityService) CreateCommunity(name, district, requestingUserUUID string) (*models.Community, error) {
	community := &models.Community{
		CommunityUUID: utils.NewUUID(),
		Name:          name,
		District:      district,
		Status:        "active",
	}

	var admin models.User
	adminFound := true
	if err := s.DB.Where("user_uuid = ?", requestingUserUUID).First(&admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		adminFound = false
		config.Warning("创建小区时未找到发起用户 %s，小区将没有初始管理员", requestingUserUUID)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		if adminFound {
			return tx.Model(community).Association("Admins").Append(&admin)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return community, nil
}

// 2. GetAllCommunities 获取所有小区列表，支持分页
func (s *CommunityService) GetAllCommunities(page, pageSize int) ([]models.Community, int64, error) {
	var communities []models.Community
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.Community{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&communities).Error; err != nil {
		return nil, 0, err
	}

	return communities, total, nil
}

// 3. GetCommunityByUUID 根据唯一标识获取小区详情
func (s *CommunityService) GetCommunityByUUID(communityUUID string) (*models.Community, error) {
	var community models.Community
	if err := s.DB.Preload("Houses").Preload("Admins").Preload("Amenities").Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return &community, nil
}

// 4. GetCommunityHouses 获取小区下的房屋列表，支持分页。
// 小区不存在时返回 ErrCommunityNotFound，存在但没有房屋时返回空列表：
// 调用方必须区分这两种情况。
func (s *CommunityService) GetCommunityHouses(communityUUID string, page, pageSize int) ([]models.CommunityHouse, int64, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCommunityNotFound
		}
		return nil, 0, err
	}

	var houses []models.CommunityHouse
	var total int64

	if err := s.DB.Model(&models.CommunityHouse{}).Where("community_id = ?", community.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Where("community_id = ?", community.ID).Limit(pageSize).Offset(offset).Find(&houses).Error; err != nil {
		return nil, 0, err
	}

	return houses, total, nil
}

// 5. GetCommunityAdmins 获取小区的管理员列表，支持分页。
// 与 GetCommunityHouses 相同的"不存在/为空"区分约定。
func (s *CommunityService) GetCommunityAdmins(communityUUID string, page, pageSize int) ([]models.User, int64, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCommunityNotFound
		}
		return nil, 0, err
	}

	var total int64
	if err := s.DB.Model(&models.CommunityAdminRelation{}).Where("community_id = ?", community.ID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var admins []models.User
	offset := (page - 1) * pageSize
	if err := s.DB.Model(&models.User{}).
		Joins("JOIN community_admin_relations ON community_admin_relations.user_id = users.id").
		Where("community_admin_relations.community_id = ?", community.ID).
		Limit(pageSize).Offset(offset).Find(&admins).Error; err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

// 6. AddAdminsToCommunity 向小区批量添加管理员。
// 小区不存在时返回 ErrCommunityNotFound。无法解析的用户标识被静默跳过，
// 不会中断整个操作，最终的管理员集合是调用方得到的唯一反馈。
func (s *CommunityService) AddAdminsToCommunity(communityUUID string, userUUIDs []string) (*models.Community, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, userUUID := range userUUIDs {
			var user models.User
			if err := tx.Where("user_uuid = ?", userUUID).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// 用户不存在，静默跳过
					config.Warning("添加管理员时未找到用户 %s，已跳过", userUUID)
					continue
				}
				return err
			}

			// 已是管理员则跳过，避免重复关联
			var count int64
			if err := tx.Model(&models.CommunityAdminRelation{}).
				Where("community_id = ? AND user_id = ?", community.ID, user.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			if err := tx.Model(&community).Association("Admins").Append(&user); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 重新获取更新后的小区信息，带上管理员集合
	if err := s.DB.Preload("Admins").Where("id = ?", community.ID).First(&community).Error; err != nil {
		return nil, err
	}

	return &community, nil
}

// 7. AddHousesToCommunity 向小区批量添加房屋，返回新生成的房屋标识集合。
// 小区不存在时返回空集合且不报错。去重只针对原样重提交：
// 候选房屋携带的标识已经属于该小区且名称一致时跳过，首次提交（无标识）总是新增。
// 去重检查在分配新标识之前完成。
func (s *CommunityService) AddHousesToCommunity(communityUUID string, candidates []models.CommunityHouse) ([]string, error) {
	var community models.Community
	if err := s.DB.Preload("Houses").Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	// 现有房屋按标识索引，去重按标识匹配而不是对象匹配
	existing := make(map[string]string, len(community.Houses))
	for _, h := range community.Houses {
		existing[h.HouseUUID] = h.Name
	}

	addedUUIDs := make([]string, 0, len(candidates))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range candidates {
			house := candidates[i]
			if name, ok := existing[house.HouseUUID]; ok && name == house.Name {
				// 原样重提交已返回过的房屋，跳过
				continue
			}

			house.ID = 0
			house.HouseUUID = utils.NewUUID()
			house.CommunityID = community.ID
			house.Members = nil

			if err := tx.Create(&house).Error; err != nil {
				return err
			}
			addedUUIDs = append(addedUUIDs, house.HouseUUID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return addedUUIDs, nil
}

// 8. RemoveHouseFromCommunity 从小区移除房屋。
// 先让所有成员脱离房屋（成员记录保留），再删除房屋记录。
// 小区不存在、房屋不存在或房屋不属于该小区时返回 false 且不报错。
func (s *CommunityService) RemoveHouseFromCommunity(communityUUID, houseUUID string) (bool, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	// 房屋独立查找，连同成员一起取出
	var house models.CommunityHouse
	if err := s.DB.Preload("Members").Where("house_uuid = ?", houseUUID).First(&house).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if house.CommunityID != community.ID {
		return false, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.removeHouseTx(tx, &community, &house)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// touchParentTx 在事务中重新持久化父记录。
// 层级发生变化（加成员、删成员、删房屋）后，父记录必须跟着保存一次。
func touchParentTx(tx *gorm.DB, parent interface{}) error {
	return tx.Model(parent).Update("updated_at", tx.NowFunc()).Error
}

// removeHouseTx 在事务中执行单个房屋的移除：
// 脱离所有成员 → 删除房屋记录 → 刷新小区。顺序不可颠倒，
// 先删房屋会留下指向已删除房屋的成员引用。
func (s *CommunityService) removeHouseTx(tx *gorm.DB, community *models.Community, house *models.CommunityHouse) error {
	for i := range house.Members {
		if err := s.HouseService.DetachMemberTx(tx, &house.Members[i]); err != nil {
			return err
		}
	}

	if err := tx.Delete(&models.CommunityHouse{}, house.ID).Error; err != nil {
		return err
	}

	return touchParentTx(tx, community)
}

// 9. RemoveAdminFromCommunity 从小区移除管理员，按标识匹配而不是对象匹配。
// 小区不存在或该用户不在管理员集合中时返回 false 且不报错。
func (s *CommunityService) RemoveAdminFromCommunity(communityUUID, adminUUID string) (bool, error) {
	var community models.Community
	if err := s.DB.Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var admin models.User
	if err := s.DB.Where("user_uuid = ?", adminUUID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	// 只有确实存在的关联才算移除成功
	var count int64
	if err := s.DB.Model(&models.CommunityAdminRelation{}).
		Where("community_id = ? AND user_id = ?", community.ID, admin.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	if err := s.DB.Model(&community).Association("Admins").Delete(&admin); err != nil {
		return false, err
	}

	return true, nil
}

// 10. DeleteCommunity 删除小区，级联拆除整个层级。
// 自底向上：逐个房屋脱离成员并删除房屋，全部完成后删除管理员关联、
// 配套设施和小区记录。整个级联在一个事务中执行，任何一步失败整体回滚，
// 不会留下指向已删除小区的孤儿房屋或指向已删除房屋的孤儿成员。
func (s *CommunityService) DeleteCommunity(communityUUID string) (bool, error) {
	var community models.Community
	if err := s.DB.Preload("Houses").Where("community_uuid = ?", communityUUID).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	// 先快照房屋标识集合，再逐个处理
	houseUUIDs := make([]string, 0, len(community.Houses))
	for _, h := range community.Houses {
		houseUUIDs = append(houseUUIDs, h.HouseUUID)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, houseUUID := range houseUUIDs {
			var house models.CommunityHouse
			if err := tx.Preload("Members").Where("house_uuid = ?", houseUUID).First(&house).Error; err != nil {
				return err
			}
			if err := s.removeHouseTx(tx, &community, &house); err != nil {
				return err
			}
		}

		// 清除管理员关联
		if err := tx.Where("community_id = ?", community.ID).Delete(&models.CommunityAdminRelation{}).Error; err != nil {
			return err
		}

		// 清除小区配套设施
		if err := tx.Where("community_id = ?", community.ID).Delete(&models.Amenity{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Community{}, community.ID).Error
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
