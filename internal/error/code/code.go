package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 小区相关错误码 (102xxx).
const (
	// ErrCommunityNotFound - 404: 小区不存在.
	ErrCommunityNotFound int = iota + 102000
	// ErrCommunityAlreadyExist - 400: 小区已存在.
	ErrCommunityAlreadyExist
	// ErrAdminNotInCommunity - 404: 该用户不是小区管理员.
	ErrAdminNotInCommunity
)

// 房屋相关错误码 (103xxx).
const (
	// ErrHouseNotFound - 404: 房屋不存在.
	ErrHouseNotFound int = iota + 103000
	// ErrHouseNotInCommunity - 404: 房屋不属于该小区.
	ErrHouseNotInCommunity
)

// 成员相关错误码 (104xxx).
const (
	// ErrMemberNotFound - 404: 成员不存在.
	ErrMemberNotFound int = iota + 104000
	// ErrMemberNotInHouse - 404: 成员不属于该房屋.
	ErrMemberNotInHouse
	// ErrDocumentNotFound - 404: 成员证件文档不存在.
	ErrDocumentNotFound
)

// 设施相关错误码 (105xxx).
const (
	// ErrAmenityNotFound - 404: 设施不存在.
	ErrAmenityNotFound int = iota + 105000
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
