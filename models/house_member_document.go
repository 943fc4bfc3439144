package models

// HouseMemberDocument 表示成员的证件文档，归属于唯一的成员。
// 解绑文档只清空成员侧的引用，文档记录由显式的清除操作删除。
type HouseMemberDocument struct {
	BaseModel
	DocumentUUID string `gorm:"type:varchar(36);unique;not null" json:"document_uuid"` // 文档唯一标识
	Filename     string `gorm:"type:varchar(255);not null" json:"filename"`            // 文件名
	Content      []byte `gorm:"type:mediumblob" json:"-"`                              // 文件二进制内容，不在JSON中暴露
}
