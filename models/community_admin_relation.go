package models

// CommunityAdminRelation 表示小区和管理员用户之间的多对多关系
type CommunityAdminRelation struct {
	BaseModel
	CommunityID uint `gorm:"not null;uniqueIndex:idx_community_admin" json:"community_id"` // 小区ID
	UserID      uint `gorm:"not null;uniqueIndex:idx_community_admin" json:"user_id"`      // 用户ID

	// 关联
	Community *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
