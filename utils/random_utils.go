package utils

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/google/uuid"
)

// NewUUID 生成一个全局唯一的字符串标识。
// 小区、房屋、成员等实体的对外标识全部由这里生成，调用方传入的标识不被信任。
func NewUUID() string {
	return uuid.NewString()
}

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}
