package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 小区相关错误码
	ErrCommunityNotFound:     "小区不存在",
	ErrCommunityAlreadyExist: "小区已存在",
	ErrAdminNotInCommunity:   "该用户不是小区管理员",

	// 房屋相关错误码
	ErrHouseNotFound:       "房屋不存在",
	ErrHouseNotInCommunity: "房屋不属于该小区",

	// 成员相关错误码
	ErrMemberNotFound:   "成员不存在",
	ErrMemberNotInHouse: "成员不属于该房屋",
	ErrDocumentNotFound: "成员证件文档不存在",

	// 设施相关错误码
	ErrAmenityNotFound: "设施不存在",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 小区相关错误码
	ErrCommunityNotFound:     StatusNotFound,
	ErrCommunityAlreadyExist: StatusBadRequest,
	ErrAdminNotInCommunity:   StatusNotFound,

	// 房屋相关错误码
	ErrHouseNotFound:       StatusNotFound,
	ErrHouseNotInCommunity: StatusNotFound,

	// 成员相关错误码
	ErrMemberNotFound:   StatusNotFound,
	ErrMemberNotInHouse: StatusNotFound,
	ErrDocumentNotFound: StatusNotFound,

	// 设施相关错误码
	ErrAmenityNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
