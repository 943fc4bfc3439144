package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// InterfaceUserService 定义用户服务接口
type InterfaceUserService interface {
	GetAllUsers(page, pageSize int) ([]models.User, int64, error)
	GetUserByUUID(userUUID string) (*models.User, error)
	GetUserByUUIDWithCommunities(userUUID string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(userUUID string, updates map[string]interface{}) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
}

// UserService 提供用户相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetAllUsers 获取所有用户列表，支持分页
func (s *UserService) GetAllUsers(page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := s.DB.Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// 2. GetUserByUUID 根据唯一标识获取用户
func (s *UserService) GetUserByUUID(userUUID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("user_uuid = ?", userUUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 3. GetUserByUUIDWithCommunities 获取用户及其管理的小区集合
func (s *UserService) GetUserByUUIDWithCommunities(userUUID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Communities").Where("user_uuid = ?", userUUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 4. CreateUser 创建新用户
func (s *UserService) CreateUser(user *models.User) error {
	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("用户名已存在")
	}

	user.UserUUID = utils.NewUUID()
	if user.Role == "" {
		user.Role = "user"
	}

	return s.DB.Create(user).Error
}

// 5. UpdateUser 更新用户信息
func (s *UserService) UpdateUser(userUUID string, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByUUID(userUUID)
	if err != nil {
		return nil, err
	}

	// 如果更新用户名，需要检查唯一性
	if username, ok := updates["username"].(string); ok && username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ? AND id != ?", username, user.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("用户名已存在")
		}
	}

	// 密码走统一的哈希处理
	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的用户信息
	return s.GetUserByUUID(userUUID)
}

// 6. Authenticate 校验用户名和密码，用于登录
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, errors.New("用户密码错误")
	}

	return &user, nil
}
