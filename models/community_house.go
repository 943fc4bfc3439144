package models

// CommunityHouse 表示小区下的房屋，一个房屋终生只归属一个小区
type CommunityHouse struct {
	BaseModel
	HouseUUID   string `gorm:"type:varchar(36);unique;not null" json:"house_uuid"` // 房屋唯一标识，由服务端生成
	Name        string `gorm:"type:varchar(100);not null" json:"name"`             // 房屋名称，如"1号楼101"
	CommunityID uint   `gorm:"not null" json:"community_id"`                       // 归属小区ID，创建后不可变更

	// 关联关系
	Community *Community    `gorm:"foreignKey:CommunityID" json:"community,omitempty"` // 归属的小区
	Members   []HouseMember `gorm:"foreignKey:HouseID" json:"members,omitempty"`       // 房屋下的成员（一对多）
}
