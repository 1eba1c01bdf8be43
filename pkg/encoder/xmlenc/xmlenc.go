// Package xmlenc 提供 XML 风格的编码配置。
//
// 引擎本身没有“元素”的概念，文档结构完全由实现了 Marshaler 的类型通过标签作用域构造：
//
//	func (d SampleDoc) MarshalMarkup(call *encoder.Call, yield encoder.Yield) error {
//		return yield(call.Tag("body").Scope(func() error {
//			return yield(encoder.Literal("Hello world!"))
//		}))
//	}
package xmlenc

import (
	"reflect"
	"strings"

	"github.com/lk2023060901/encoder-go/pkg/encoder"
)

// Name 为格式名。
const Name = "xml"

// Marshaler 由可以输出标签结构的类型实现。
type Marshaler interface {
	MarshalMarkup(call *encoder.Call, yield encoder.Yield) error
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

var textEscapes = encoder.EscapeTable{
	'<': "&lt;",
	'>': "&gt;",
	'&': "&amp;",
}

// Escapes 返回文本内容的转义表。
func Escapes() encoder.EscapeTable {
	out := make(encoder.EscapeTable, len(textEscapes))
	for k, v := range textEscapes {
		out[k] = v
	}
	return out
}

// Config 返回 XML 配置：布尔值为 1/0，none 与非有限浮点数不可表示，
// 序列元素直接拼接，映射不可表示。
func Config() encoder.Config {
	return encoder.Config{
		Name: Name,
		Literals: encoder.Literals{
			encoder.ConstTrue:  "1",
			encoder.ConstFalse: "0",
		},
		Escapes:  Escapes(),
		Sequence: &encoder.Delimiters{},
		Hook:     Hook,
		Scope:    NewMarkup(),
	}
}

// Hook 为实现了 Marshaler 的类型返回生产者。
func Hook(t reflect.Type) (encoder.Producer, bool) {
	if !t.Implements(marshalerType) {
		return nil, false
	}
	return produce, true
}

func produce(value any, call *encoder.Call, yield encoder.Yield) error {
	return value.(Marshaler).MarshalMarkup(call, yield)
}

// Markup 生成 XML 标签的开始与结束标记，属性值使用属性转义表。
type Markup struct {
	attrEscaper *encoder.Escaper
}

// NewMarkup 创建 Markup。
func NewMarkup() *Markup {
	attrEscapes := Escapes()
	attrEscapes['"'] = "&quot;"
	return &Markup{attrEscaper: encoder.NewEscaper(attrEscapes)}
}

func (m *Markup) Open(name string, attrs []encoder.Attr) string {
	if len(attrs) == 0 {
		return "<" + name + ">"
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	for _, attr := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		sb.WriteString(m.attrEscaper.Escape(attr.Value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}

func (m *Markup) Close(name string) string {
	return "</" + name + ">"
}
