package encoder

import (
	"reflect"

	"github.com/lk2023060901/encoder-go/pkg/util/merr"
)

// Hook 为引擎无法识别的类型提供自定义编码入口，ok 为 false 表示拒绝。
type Hook func(t reflect.Type) (producer Producer, ok bool)

// Producer 是自定义类型的编码入口。
//
// 每次需要输出内容时调用 yield，引擎处理完该内容后 yield 才返回，
// 因此内容严格按调用顺序、深度优先地写入输出。yield 返回错误后应尽快返回该错误。
type Producer func(value any, call *Call, yield Yield) error

// Yield 将一个内容交给引擎处理。
type Yield func(c Contribution) error

// Contribution 是生产者可以输出的内容，由 Literal、Value 与标签作用域构造。
type Contribution interface {
	apply(s *encodeState) error
}

type literal string

func (l literal) apply(s *encodeState) error {
	s.sink.Append(string(l))
	return nil
}

// Literal 返回原样追加的文本。
func Literal(text string) Contribution {
	return literal(text)
}

type nested struct {
	value any
}

func (n nested) apply(s *encodeState) error {
	return s.encode(n.value)
}

// Value 返回一个由引擎按常规规则递归编码的值。
func Value(v any) Contribution {
	return nested{value: v}
}

// Call 是一次编码调用的上下文句柄，仅在该调用期间有效。
type Call struct {
	format string
	tags   map[string]*Tag
}

func newCall(format string) *Call {
	return &Call{format: format}
}

// Format 返回当前配置的格式名。
func (c *Call) Format() string {
	return c.format
}

// Tag 返回名为 name 的标签句柄。同一次调用中相同名字总是返回同一个句柄。
func (c *Call) Tag(name string) *Tag {
	if t, ok := c.tags[name]; ok {
		return t
	}
	if c.tags == nil {
		c.tags = make(map[string]*Tag)
	}
	t := &Tag{name: name, call: c}
	c.tags[name] = t
	return t
}

type producerEntry struct {
	producer Producer
	ok       bool
}

// producerFor 查询 Hook，结果按类型缓存在 Encoder 上。
func (e *Encoder) producerFor(t reflect.Type) (Producer, bool) {
	if e.cfg.Hook == nil || t == nil {
		return nil, false
	}
	if cached, ok := e.producers.Load(t); ok {
		entry := cached.(producerEntry)
		return entry.producer, entry.ok
	}
	p, ok := e.cfg.Hook(t)
	if p == nil {
		ok = false
	}
	e.producers.Store(t, producerEntry{producer: p, ok: ok})
	return p, ok
}

func (s *encodeState) encodeCustom(v any, rv reflect.Value) error {
	p, ok := s.enc.producerFor(reflect.TypeOf(v))
	if !ok && rv.IsValid() && rv.CanInterface() && rv.Type() != reflect.TypeOf(v) {
		// 指针未匹配时尝试其指向的值。
		v = rv.Interface()
		p, ok = s.enc.producerFor(rv.Type())
	}
	if !ok && rv.IsValid() && rv.Kind() != reflect.Pointer {
		// 方法定义在指针接收者上时，以指向副本的指针调用。
		if p, ok = s.enc.producerFor(reflect.PointerTo(rv.Type())); ok {
			ptr := rv
			if rv.CanAddr() {
				ptr = rv.Addr()
			} else {
				ptr = reflect.New(rv.Type())
				ptr.Elem().Set(rv)
			}
			v = ptr.Interface()
		}
	}
	if !ok {
		return newTypeError(s.cfg.Name, v)
	}
	return s.runProducer(v, p)
}

func (s *encodeState) runProducer(v any, p Producer) error {
	var (
		failed   error
		returned bool
	)
	yield := func(c Contribution) error {
		if returned {
			return merr.WrapErrOperationNotSupported("yield after producer returned")
		}
		if failed != nil {
			return failed
		}
		if c == nil {
			return nil
		}
		if err := c.apply(s); err != nil {
			failed = err
			return err
		}
		return nil
	}

	err := p(v, s.call, yield)
	returned = true
	if err == nil {
		err = failed
	}
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EncodeError); ok {
		return ee
	}
	return newProducerError(s.cfg.Name, v, err)
}
