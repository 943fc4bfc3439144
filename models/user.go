package models

import (
	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/utils"
)

// User represents system users who can administer communities
type User struct {
	BaseModel
	UserUUID string `gorm:"type:varchar(36);unique;not null" json:"user_uuid"` // 用户唯一标识
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Email    string `gorm:"type:varchar(100);unique" json:"email"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Role     string `gorm:"type:varchar(20);default:'user'" json:"role"` // 角色：admin, user

	// Relations
	Communities []Community `gorm:"many2many:community_admin_relations;joinForeignKey:UserID;joinReferences:CommunityID" json:"communities,omitempty"` // 该用户管理的小区（多对多）
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
