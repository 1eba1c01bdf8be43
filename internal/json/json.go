// Package json 统一项目内的 JSON 编解码实现，底层使用 bytedance/sonic。
package json

import (
	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal 与 encoding/json.Marshal 行为兼容。
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalString 将 v 编码为 JSON 字符串。
func MarshalString(v any) (string, error) {
	return api.MarshalToString(v)
}

// Unmarshal 与 encoding/json.Unmarshal 行为兼容。
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// UnmarshalString 从 JSON 字符串解码到 v。
func UnmarshalString(data string, v any) error {
	return api.UnmarshalFromString(data, v)
}

// Valid 判断 data 是否为合法 JSON。
func Valid(data []byte) bool {
	return api.Valid(data)
}
