package models

// Community 表示小区信息，是整个层级结构的顶层聚合
type Community struct {
	BaseModel
	CommunityUUID string `gorm:"type:varchar(36);unique;not null" json:"community_uuid"` // 小区唯一标识，由服务端生成
	Name          string `gorm:"type:varchar(100);not null" json:"name"`                 // 小区名称，如"枫叶花园"
	District      string `gorm:"type:varchar(100)" json:"district"`                      // 所在区域，如"北区"
	Status        string `gorm:"type:varchar(20);default:'active'" json:"status"`        // 状态：active, inactive

	// 关联关系
	Houses    []CommunityHouse `gorm:"foreignKey:CommunityID" json:"houses,omitempty"`                           // 小区下的房屋（一对多，归属关系）
	Admins    []User           `gorm:"many2many:community_admin_relations;joinForeignKey:CommunityID;joinReferences:UserID" json:"admins,omitempty"` // 小区管理员（多对多）
	Amenities []Amenity        `gorm:"foreignKey:CommunityID" json:"amenities,omitempty"`                        // 小区配套设施（一对多）
}
