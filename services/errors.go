package services

import "errors"

// 服务层哨兵错误。读路径用它们区分"目标不存在"和"存在但为空"：
// 目标聚合不存在时返回哨兵错误，存在但无下级记录时返回空列表和nil错误。
// 写路径（布尔/集合返回值）按约定对不存在的目标返回 false/空集合且不返回错误。
var (
	ErrCommunityNotFound = errors.New("小区不存在")
	ErrHouseNotFound     = errors.New("房屋不存在")
	ErrMemberNotFound    = errors.New("成员不存在")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrDocumentNotFound  = errors.New("成员证件文档不存在")
	ErrAmenityNotFound   = errors.New("设施不存在")
)
