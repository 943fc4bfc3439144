package models

// HouseMember 表示房屋成员。成员的房屋引用可以为空：
// 从房屋移除成员只清空引用而不删除记录，历史账单仍然指向该成员。
type HouseMember struct {
	BaseModel
	MemberUUID string `gorm:"type:varchar(36);unique;not null" json:"member_uuid"` // 成员唯一标识，由服务端生成
	Name       string `gorm:"type:varchar(50);not null" json:"name"`               // 成员姓名
	Phone      string `gorm:"type:varchar(20)" json:"phone"`                       // 联系电话
	HouseID    *uint  `json:"house_id"`                                            // 所属房屋ID，同一时刻最多归属一个房屋
	DocumentID *uint  `gorm:"unique" json:"document_id"`                           // 证件文档ID（一对一，可空）

	// 关联关系
	House    *CommunityHouse      `gorm:"foreignKey:HouseID" json:"house,omitempty"`       // 所属房屋
	Document *HouseMemberDocument `gorm:"foreignKey:DocumentID" json:"document,omitempty"` // 成员证件文档
}
