package models

// Amenity 表示小区的配套设施，如健身房、游泳池
type Amenity struct {
	BaseModel
	AmenityUUID string `gorm:"type:varchar(36);unique;not null" json:"amenity_uuid"` // 设施唯一标识
	Name        string `gorm:"type:varchar(100);not null" json:"name"`               // 设施名称
	Description string `gorm:"type:varchar(255)" json:"description"`                 // 设施描述
	CommunityID uint   `gorm:"not null" json:"community_id"`                         // 归属小区ID

	// 关联
	Community *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
}
