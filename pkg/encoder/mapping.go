package encoder

import (
	"encoding"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Entries 由按插入顺序保存条目的映射类型实现，例如 typeutil.OrderedMap。
//
// ordered 为 true 时必须按插入顺序回调 fn；fn 返回错误时应立即停止并返回该错误。
type Entries interface {
	RangeEntries(ordered bool, fn func(key, value any) error) error
}

func isMapping(v any, rv reflect.Value) bool {
	if _, ok := v.(Entries); ok {
		return true
	}
	return rv.Kind() == reflect.Map
}

func (s *encodeState) encodeMapping(v any, rv reflect.Value) error {
	syntax := s.cfg.Mapping
	if syntax == nil {
		return newTypeError(s.cfg.Name, v)
	}

	s.sink.Append(syntax.Open)
	first := true
	writeEntry := func(key, value any) error {
		text, err := s.keyText(key)
		if err != nil {
			return err
		}
		if !first {
			s.sink.Append(syntax.EntrySeparator)
		}
		first = false
		s.appendQuoted(text)
		s.sink.Append(syntax.KeyValue)
		return s.encode(value)
	}

	var err error
	if entries, ok := v.(Entries); ok {
		err = entries.RangeEntries(s.cfg.PreserveInsertionOrder, writeEntry)
	} else {
		err = s.rangeMap(rv, writeEntry)
	}
	if err != nil {
		return err
	}
	s.sink.Append(syntax.Close)
	return nil
}

func (s *encodeState) rangeMap(rv reflect.Value, fn func(key, value any) error) error {
	if !s.cfg.SortMapKeys {
		iter := rv.MapRange()
		for iter.Next() {
			if err := fn(iter.Key().Interface(), iter.Value().Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	type entry struct {
		text  string
		key   any
		value any
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		text, err := s.keyText(key)
		if err != nil {
			return err
		}
		entries = append(entries, entry{text: text, key: key, value: iter.Value().Interface()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.text, b.text)
	})
	for _, e := range entries {
		if err := fn(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// keyText 将映射的键转换为文本，之后按文本标量的规则转义与加引号。
func (s *encodeState) keyText(key any) (string, error) {
	if tm, ok := key.(encoding.TextMarshaler); ok {
		if rv := reflect.ValueOf(key); rv.Kind() != reflect.Pointer || !rv.IsNil() {
			b, err := tm.MarshalText()
			if err != nil {
				return "", newKeyError(s.cfg.Name, key)
			}
			return string(b), nil
		}
	}

	rv := indirect(reflect.ValueOf(key))
	if !rv.IsValid() || rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", newKeyError(s.cfg.Name, key)
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", newKeyError(s.cfg.Name, key)
		}
		return string(appendFloat(nil, f, rv.Type().Bits())), nil
	}
	if rv.Type() == bigIntPtrType || rv.Type() == bigIntType {
		return bigInt(rv).String(), nil
	}
	return "", newKeyError(s.cfg.Name, key)
}
