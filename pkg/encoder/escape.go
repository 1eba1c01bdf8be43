package encoder

import (
	"fmt"
	"unicode/utf8"
)

// EscapeTable 将单个字符映射为替换文本。
//
// 表中没有的字符原样输出，但码点小于 0x20 的控制字符例外，
// 未显式配置时使用 \u 加 4 位小写十六进制码点。
type EscapeTable map[rune]string

// Lookup 返回 r 的替换文本，ok 为 false 表示 r 原样输出。
func (t EscapeTable) Lookup(r rune) (string, bool) {
	if s, ok := t[r]; ok {
		return s, true
	}
	if r >= 0 && r < 0x20 {
		return fmt.Sprintf(`\u%04x`, r), true
	}
	return "", false
}

// Resolve 返回 r 在输出中的文本，对所有字符都有定义。
func (t EscapeTable) Resolve(r rune) string {
	if s, ok := t.Lookup(r); ok {
		return s
	}
	return string(r)
}

// Escaper 是 EscapeTable 编译后的形式，ASCII 字符走查表。创建后只读，可并发使用。
type Escaper struct {
	ascii [utf8.RuneSelf]string
	hit   [utf8.RuneSelf]bool
	wide  map[rune]string
}

// NewEscaper 编译转义表。
func NewEscaper(t EscapeTable) *Escaper {
	e := &Escaper{}
	for c := 0; c < utf8.RuneSelf; c++ {
		if s, ok := t.Lookup(rune(c)); ok {
			e.ascii[c] = s
			e.hit[c] = true
		}
	}
	for r, s := range t {
		if r >= utf8.RuneSelf {
			if e.wide == nil {
				e.wide = make(map[rune]string)
			}
			e.wide[r] = s
		}
	}
	return e
}

// Escape 返回 s 转义后的文本，不包含引号。
func (e *Escaper) Escape(s string) string {
	return string(e.Append(nil, s))
}

// Append 将 s 转义后追加到 b 并返回扩展后的切片。无效的 UTF-8 字节按 U+FFFD 处理。
func (e *Escaper) Append(b []byte, s string) []byte {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if e.hit[c] {
				b = append(b, s[start:i]...)
				b = append(b, e.ascii[c]...)
				start = i + 1
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, s[start:i]...)
			if rep, ok := e.wide[utf8.RuneError]; ok {
				b = append(b, rep...)
			} else {
				b = append(b, "\ufffd"...)
			}
			i += size
			start = i
			continue
		}
		if rep, ok := e.wide[r]; ok {
			b = append(b, s[start:i]...)
			b = append(b, rep...)
			start = i + size
		}
		i += size
	}
	return append(b, s[start:]...)
}
