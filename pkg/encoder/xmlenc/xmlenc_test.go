package xmlenc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lk2023060901/encoder-go/pkg/buffer"
	"github.com/lk2023060901/encoder-go/pkg/encoder"
	"github.com/lk2023060901/encoder-go/pkg/util/merr"
)

type SampleDoc struct{}

func (SampleDoc) MarshalMarkup(call *encoder.Call, yield encoder.Yield) error {
	return yield(call.Tag("body").Scope(func() error {
		return yield(encoder.Literal("Hello world!"))
	}))
}

type link struct {
	href, text string
}

func (l *link) MarshalMarkup(call *encoder.Call, yield encoder.Yield) error {
	return yield(call.Tag("a").With(encoder.Attr{Name: "href", Value: l.href}).Scope(func() error {
		return yield(encoder.Value(l.text))
	}))
}

type list struct {
	items []any
}

func (l list) MarshalMarkup(call *encoder.Call, yield encoder.Yield) error {
	li := call.Tag("li")
	return yield(call.Tag("ul").Scope(func() error {
		for _, item := range l.items {
			if err := yield(li.Scope(func() error { return yield(encoder.Value(item)) })); err != nil {
				return err
			}
		}
		return nil
	}))
}

type broken struct{}

var errBroken = errors.New("broken")

func (broken) MarshalMarkup(call *encoder.Call, yield encoder.Yield) error {
	return yield(call.Tag("section").Scope(func() error {
		if err := yield(encoder.Literal("before")); err != nil {
			return err
		}
		return errBroken
	}))
}

type XMLSuite struct {
	suite.Suite
	enc *encoder.Encoder
}

func (s *XMLSuite) SetupSuite() {
	s.enc = encoder.New(Config())
}

func (s *XMLSuite) TestSampleDoc() {
	out, err := s.enc.Encode(SampleDoc{})
	s.NoError(err)
	s.Equal("<body>Hello world!</body>", out)
}

func (s *XMLSuite) TestScalars() {
	cases := []struct {
		in   any
		want string
	}{
		{true, "1"},
		{false, "0"},
		{42, "42"},
		{-1.5, "-1.5"},
		{"a < b && c > d", "a &lt; b &amp;&amp; c &gt; d"},
		{`"quoted"`, `"quoted"`},
		{[]any{"a", 1, true}, "a11"},
	}
	for _, c := range cases {
		out, err := s.enc.Encode(c.in)
		s.NoError(err)
		s.Equal(c.want, out)
	}
}

func (s *XMLSuite) TestUnsupportedConstants() {
	for _, c := range []struct {
		value    any
		constant encoder.Constant
	}{
		{nil, encoder.ConstNone},
		{math.Inf(1), encoder.ConstPosInf},
		{math.Inf(-1), encoder.ConstNegInf},
		{math.NaN(), encoder.ConstNaN},
	} {
		out, err := s.enc.Encode(c.value)
		s.Empty(out)
		var ee *encoder.EncodeError
		s.Require().ErrorAs(err, &ee)
		s.Equal(encoder.ReasonConstant, ee.Reason)
		s.Equal(c.constant, ee.Constant)
		s.Equal(Name, ee.Format)
	}
}

func (s *XMLSuite) TestMappingUnsupported() {
	_, err := s.enc.Encode(map[string]int{"a": 1})
	s.ErrorIs(err, merr.ErrEncodeUnsupportedType)
}

func (s *XMLSuite) TestPlainStructUnsupported() {
	_, err := s.enc.Encode(struct{ A int }{A: 1})
	var ee *encoder.EncodeError
	s.Require().ErrorAs(err, &ee)
	s.Equal(encoder.ReasonType, ee.Reason)
}

func (s *XMLSuite) TestAttributes() {
	out, err := s.enc.Encode(&link{href: `/search?q="x"&y=<1>`, text: "go & see"})
	s.NoError(err)
	s.Equal(`<a href="/search?q=&quot;x&quot;&amp;y=&lt;1&gt;">go &amp; see</a>`, out)

	out, err = s.enc.Encode(link{href: "/b", text: "B"})
	s.NoError(err)
	s.Equal(`<a href="/b">B</a>`, out)
}

func (s *XMLSuite) TestPointerReceiverInValueSlice() {
	links := []link{{href: "/a", text: "A"}, {href: "/b", text: "B"}}
	out, err := s.enc.Encode(links)
	s.NoError(err)
	s.Equal(`<a href="/a">A</a><a href="/b">B</a>`, out)

	ptrs := []*link{&links[0], &links[1]}
	fromPtrs, err := s.enc.Encode(ptrs)
	s.NoError(err)
	s.Equal(out, fromPtrs)
}

func (s *XMLSuite) TestNestedDocuments() {
	doc := list{items: []any{"one", 2, SampleDoc{}, list{items: []any{false}}}}
	out, err := s.enc.Encode(doc)
	s.NoError(err)
	s.Equal("<ul><li>one</li><li>2</li><li><body>Hello world!</body></li><li><ul><li>0</li></ul></li></ul>", out)
}

func (s *XMLSuite) TestNestedFailureClosesScopes() {
	doc := list{items: []any{"ok", nil}}
	buf := buffer.New(64)
	err := s.enc.EncodeTo(buf, doc)
	s.ErrorIs(err, merr.ErrEncodeUnsupportedConstant)
	s.Equal("<ul><li>ok</li><li></li></ul>", buf.Finish())
}

func (s *XMLSuite) TestProducerFailureClosesScopes() {
	buf := buffer.New(64)
	err := s.enc.EncodeTo(buf, broken{})
	s.ErrorIs(err, errBroken)
	s.ErrorIs(err, merr.ErrEncodeProducerFailed)
	s.Equal("<section>before</section>", buf.Finish())

	out, err := s.enc.Encode(broken{})
	s.Error(err)
	s.Empty(out)
}

func TestXML(t *testing.T) {
	suite.Run(t, new(XMLSuite))
}

func TestMarkup(t *testing.T) {
	m := NewMarkup()
	assert.Equal(t, "<p>", m.Open("p", nil))
	assert.Equal(t, "</p>", m.Close("p"))
	assert.Equal(t, `<img src="a.png" alt="&lt;x&gt;">`, m.Open("img", []encoder.Attr{
		{Name: "src", Value: "a.png"},
		{Name: "alt", Value: "<x>"},
	}))
}

func TestConfig(t *testing.T) {
	cfg := Config()
	_, ok := cfg.Literals.Lookup(encoder.ConstNone)
	assert.False(t, ok)
	lit, ok := cfg.Literals.Lookup(encoder.ConstTrue)
	require.True(t, ok)
	assert.Equal(t, "1", lit)
	assert.Empty(t, cfg.Quote)
	assert.Nil(t, cfg.Mapping)
	assert.NotNil(t, cfg.Hook)
	assert.NotNil(t, cfg.Scope)
	assert.Len(t, cfg.Escapes, 3)
	_, ok = cfg.Escapes['"']
	assert.False(t, ok)
}
