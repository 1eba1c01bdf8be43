// Package jsonenc 提供 JSON 风格的编码配置。
package jsonenc

import (
	"reflect"

	"github.com/samber/lo"

	"github.com/lk2023060901/encoder-go/internal/json"
	"github.com/lk2023060901/encoder-go/pkg/encoder"
)

const (
	// Name 为无序变体的格式名。
	Name = "json"
	// OrderedName 为保持插入顺序变体的格式名。
	OrderedName = "json-ordered"
)

var literals = encoder.Literals{
	encoder.ConstNone:   "null",
	encoder.ConstTrue:   "true",
	encoder.ConstFalse:  "false",
	encoder.ConstPosInf: "Infinity",
	encoder.ConstNegInf: "-Infinity",
	encoder.ConstNaN:    "NaN",
}

var quoteEscapes = encoder.EscapeTable{
	'\\': `\\`,
	'"':  `\"`,
}

var controlEscapes = encoder.EscapeTable{
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

// Escapes 返回 JSON 转义表，其余控制字符使用 \u 回退规则。
func Escapes() encoder.EscapeTable {
	return lo.Assign(quoteEscapes, controlEscapes)
}

// Literals 返回 JSON 常量字面量表的副本。
func Literals() encoder.Literals {
	return literals.Clone()
}

// Config 返回不保证映射顺序的 JSON 配置。
func Config() encoder.Config {
	return encoder.Config{
		Name:     Name,
		Literals: Literals(),
		Escapes:  Escapes(),
		Quote:    `"`,
		Sequence: &encoder.Delimiters{Open: "[", Close: "]", Separator: ","},
		Mapping:  &encoder.MappingSyntax{Open: "{", Close: "}", EntrySeparator: ",", KeyValue: ":"},
	}
}

// OrderedConfig 返回按插入顺序输出映射的 JSON 配置，Go map 按键排序。
func OrderedConfig() encoder.Config {
	cfg := Config()
	cfg.Name = OrderedName
	cfg.PreserveInsertionOrder = true
	cfg.SortMapKeys = true
	return cfg
}

// WithStructFallback 为结构体类型启用 encoding/json 兼容的回退编码。
// 其余无法识别的类型仍按原规则失败。
func WithStructFallback(cfg encoder.Config) encoder.Config {
	cfg.Hook = StructHook
	return cfg
}

// StructHook 对结构体及其指针使用 sonic 编码，输出作为原始 JSON 片段写入。
func StructHook(t reflect.Type) (encoder.Producer, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	return marshalStruct, true
}

func marshalStruct(value any, _ *encoder.Call, yield encoder.Yield) error {
	raw, err := json.MarshalString(value)
	if err != nil {
		return err
	}
	return yield(encoder.Literal(raw))
}
