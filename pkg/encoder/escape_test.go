package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeTableLookup(t *testing.T) {
	table := EscapeTable{'\n': `\n`, '"': `\"`}

	s, ok := table.Lookup('\n')
	assert.True(t, ok)
	assert.Equal(t, `\n`, s)

	s, ok = table.Lookup(0x01)
	assert.True(t, ok)
	assert.Equal(t, `\u0001`, s)

	s, ok = table.Lookup(0x1f)
	assert.True(t, ok)
	assert.Equal(t, `\u001f`, s)

	_, ok = table.Lookup(' ')
	assert.False(t, ok)
	_, ok = table.Lookup(0x7f)
	assert.False(t, ok)

	assert.Equal(t, `\"`, table.Resolve('"'))
	assert.Equal(t, "a", table.Resolve('a'))
	assert.Equal(t, "é", table.Resolve('é'))
}

func TestEscapeTableExplicitWinsOverFallback(t *testing.T) {
	table := EscapeTable{0x00: "<NUL>"}
	assert.Equal(t, "<NUL>", table.Resolve(0x00))
	assert.Equal(t, `\u0002`, table.Resolve(0x02))
}

func TestEscaper(t *testing.T) {
	e := NewEscaper(EscapeTable{
		'<': "&lt;",
		'&': "&amp;",
		'→': "->",
	})

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a<b", "a&lt;b"},
		{"&&", "&amp;&amp;"},
		{"x→y", "x->y"},
		{"héllo", "héllo"},
		{"tab\there", `tab\u0009here`},
		{"bad\xffbyte", "bad�byte"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, e.Escape(c.in), "input %q", c.in)
	}

	out := e.Append([]byte("prefix:"), "<")
	assert.Equal(t, "prefix:&lt;", string(out))
}

func TestEscaperEveryCharacterAccountedFor(t *testing.T) {
	table := EscapeTable{'"': `\"`, '\\': `\\`}
	e := NewEscaper(table)
	for r := rune(0); r < 0x300; r++ {
		want := table.Resolve(r)
		assert.Equal(t, want, e.Escape(string(r)), "rune %U", r)
	}
}
