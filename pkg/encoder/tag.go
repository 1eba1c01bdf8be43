package encoder

import "github.com/lk2023060901/encoder-go/pkg/util/merr"

// Tag 是命名的标签句柄，由 Call.Tag 创建。
type Tag struct {
	name string
	call *Call
}

// Name 返回标签名。
func (t *Tag) Name() string {
	return t.name
}

// Scope 返回一个标签作用域：先写入开始标记，再执行 body，
// 无论 body 是否出错都会写入结束标记。body 中通过 yield 输出的内容成为标签的子内容。
func (t *Tag) Scope(body func() error) Contribution {
	return scope{call: t.call, name: t.name, body: body}
}

// With 返回带属性的元素，属性按给定顺序输出。
func (t *Tag) With(attrs ...Attr) Element {
	return Element{tag: t, attrs: attrs}
}

// Element 是带属性的标签。
type Element struct {
	tag   *Tag
	attrs []Attr
}

// Scope 与 Tag.Scope 相同，开始标记中带有属性。
func (el Element) Scope(body func() error) Contribution {
	return scope{call: el.tag.call, name: el.tag.name, attrs: el.attrs, body: body}
}

type scope struct {
	call  *Call
	name  string
	attrs []Attr
	body  func() error
}

func (c scope) apply(s *encodeState) error {
	// 标签句柄只属于创建它的那次调用。
	if c.call != s.call {
		return merr.WrapErrOperationNotSupported("tag " + c.name + " used outside its call")
	}
	syntax := s.cfg.Scope
	if syntax == nil {
		return newScopeError(s.cfg.Name, c.name)
	}
	s.sink.Append(syntax.Open(c.name, c.attrs))
	defer s.sink.Append(syntax.Close(c.name))
	if c.body == nil {
		return nil
	}
	return c.body()
}
