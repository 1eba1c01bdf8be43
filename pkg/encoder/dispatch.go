package encoder

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
)

var (
	bigIntType    = reflect.TypeOf(big.Int{})
	bigIntPtrType = reflect.TypeOf((*big.Int)(nil))
	noneType      = reflect.TypeOf(None)
)

type encodeState struct {
	enc     *Encoder
	cfg     *Config
	sink    Sink
	call    *Call
	scratch []byte
}

// matcher 是一条内建编码规则。rv 为解引用后的值，v 为原始值。
type matcher struct {
	name   string
	match  func(v any, rv reflect.Value) bool
	encode func(s *encodeState, v any, rv reflect.Value) error
}

// matchers 按优先级排列，第一个匹配的规则生效，都不匹配时交给 Hook。
var matchers []matcher

func init() {
	matchers = []matcher{
		{name: "none", match: isNone, encode: (*encodeState).encodeNone},
		{name: "bool", match: isBool, encode: (*encodeState).encodeBool},
		{name: "integer", match: isInteger, encode: (*encodeState).encodeInteger},
		{name: "float", match: isFloat, encode: (*encodeState).encodeFloat},
		{name: "text", match: isText, encode: (*encodeState).encodeText},
		{name: "sequence", match: isSequence, encode: (*encodeState).encodeSequence},
		{name: "mapping", match: isMapping, encode: (*encodeState).encodeMapping},
	}
}

func (s *encodeState) encode(v any) error {
	rv := indirect(reflect.ValueOf(v))
	for i := range matchers {
		if m := &matchers[i]; m.match(v, rv) {
			return m.encode(s, v, rv)
		}
	}
	return s.encodeCustom(v, rv)
}

// indirect 解开非空指针，*big.Int 保持不变。
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Type() != bigIntPtrType {
		rv = rv.Elem()
	}
	return rv
}

func (s *encodeState) constant(c Constant, v any) error {
	lit, ok := s.cfg.Literals.Lookup(c)
	if !ok {
		return newConstantError(s.cfg.Name, c, v)
	}
	s.sink.Append(lit)
	return nil
}

func isNone(v any, rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return rv.Type() == noneType
}

func (s *encodeState) encodeNone(v any, _ reflect.Value) error {
	return s.constant(ConstNone, v)
}

func isBool(_ any, rv reflect.Value) bool {
	return rv.Kind() == reflect.Bool
}

func (s *encodeState) encodeBool(v any, rv reflect.Value) error {
	if rv.Bool() {
		return s.constant(ConstTrue, v)
	}
	return s.constant(ConstFalse, v)
}

func isInteger(_ any, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return rv.Type() == bigIntPtrType || rv.Type() == bigIntType
}

func (s *encodeState) encodeInteger(_ any, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.scratch = strconv.AppendInt(s.scratch[:0], rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s.scratch = strconv.AppendUint(s.scratch[:0], rv.Uint(), 10)
	default:
		s.scratch = bigInt(rv).Append(s.scratch[:0], 10)
	}
	s.sink.AppendBytes(s.scratch)
	return nil
}

func bigInt(rv reflect.Value) *big.Int {
	if rv.Type() == bigIntPtrType {
		return rv.Interface().(*big.Int)
	}
	if rv.CanAddr() {
		return rv.Addr().Interface().(*big.Int)
	}
	x := rv.Interface().(big.Int)
	return &x
}

func isFloat(_ any, rv reflect.Value) bool {
	k := rv.Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

func (s *encodeState) encodeFloat(v any, rv reflect.Value) error {
	f := rv.Float()
	switch {
	case math.IsNaN(f):
		return s.constant(ConstNaN, v)
	case math.IsInf(f, 1):
		return s.constant(ConstPosInf, v)
	case math.IsInf(f, -1):
		return s.constant(ConstNegInf, v)
	}
	s.scratch = appendFloat(s.scratch[:0], f, rv.Type().Bits())
	s.sink.AppendBytes(s.scratch)
	return nil
}

func isText(_ any, rv reflect.Value) bool {
	return rv.Kind() == reflect.String
}

func (s *encodeState) encodeText(_ any, rv reflect.Value) error {
	s.appendQuoted(rv.String())
	return nil
}

func (s *encodeState) appendQuoted(text string) {
	s.sink.Append(s.cfg.Quote)
	s.scratch = s.enc.escaper.Append(s.scratch[:0], text)
	s.sink.AppendBytes(s.scratch)
	s.sink.Append(s.cfg.Quote)
}

func isSequence(_ any, rv reflect.Value) bool {
	k := rv.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func (s *encodeState) encodeSequence(v any, rv reflect.Value) error {
	syntax := s.cfg.Sequence
	// 字节串没有通用的文本表示。
	if syntax == nil || (rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8) {
		return newTypeError(s.cfg.Name, v)
	}

	s.sink.Append(syntax.Open)
	for i, n := 0, rv.Len(); i < n; i++ {
		if i > 0 {
			s.sink.Append(syntax.Separator)
		}
		if err := s.encode(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	s.sink.Append(syntax.Close)
	return nil
}
