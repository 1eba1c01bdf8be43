package encoder

import (
	"reflect"

	"github.com/lk2023060901/encoder-go/pkg/util/merr"
)

// Reason 描述编码失败的位置。
type Reason int

const (
	// ReasonConstant 表示配置没有提供常量的字面量。
	ReasonConstant Reason = iota + 1
	// ReasonType 表示类型没有内建规则，且 Hook 拒绝处理。
	ReasonType
	// ReasonKey 表示映射的键无法转换为文本。
	ReasonKey
	// ReasonScope 表示配置不支持标签作用域。
	ReasonScope
	// ReasonProducer 表示自定义生产者返回了错误。
	ReasonProducer
)

var reasonNames = map[Reason]string{
	ReasonConstant: "constant",
	ReasonType:     "type",
	ReasonKey:      "key",
	ReasonScope:    "scope",
	ReasonProducer: "producer",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// EncodeError 表示当前配置无法表示某个值。该错误不可重试。
//
// errors.Is 可以匹配对应的 merr 错误码，生产者失败时还可以匹配生产者自身的错误。
type EncodeError struct {
	// Value 为无法表示的值。
	Value    any
	// Type 为 Value 的运行时类型，Value 为 nil 时可能为空。
	Type     reflect.Type
	// Constant 仅在 Reason 为 ReasonConstant 时有效。
	Constant Constant
	Reason   Reason
	Format   string

	code  error
	cause error
}

func (e *EncodeError) Error() string {
	if e.cause != nil {
		return e.code.Error() + ": " + e.cause.Error()
	}
	return e.code.Error()
}

func (e *EncodeError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.code, e.cause}
	}
	return []error{e.code}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

func newConstantError(format string, c Constant, v any) *EncodeError {
	return &EncodeError{
		Value:    v,
		Type:     reflect.TypeOf(v),
		Constant: c,
		Reason:   ReasonConstant,
		Format:   format,
		code:     merr.WrapErrEncodeUnsupportedConstant(c.String(), format),
	}
}

func newTypeError(format string, v any) *EncodeError {
	t := reflect.TypeOf(v)
	return &EncodeError{
		Value:  v,
		Type:   t,
		Reason: ReasonType,
		Format: format,
		code:   merr.WrapErrEncodeUnsupportedType(typeName(t), format),
	}
}

func newKeyError(format string, key any) *EncodeError {
	t := reflect.TypeOf(key)
	return &EncodeError{
		Value:  key,
		Type:   t,
		Reason: ReasonKey,
		Format: format,
		code:   merr.WrapErrEncodeUnsupportedKey(typeName(t), format),
	}
}

func newScopeError(format string, tag string) *EncodeError {
	return &EncodeError{
		Value:  tag,
		Reason: ReasonScope,
		Format: format,
		code:   merr.WrapErrEncodeScopeUnsupported(tag, format),
	}
}

func newProducerError(format string, v any, cause error) *EncodeError {
	t := reflect.TypeOf(v)
	return &EncodeError{
		Value:  v,
		Type:   t,
		Reason: ReasonProducer,
		Format: format,
		code:   merr.WrapErrEncodeProducerFailed(typeName(t), format),
		cause:  cause,
	}
}
