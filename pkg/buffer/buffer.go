// Copyright (c) 2019 The Gnet Authors. All rights reserved.
// Copyright (c) 2019 Chao yuepan, Allen Xu
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE

// Package buffer 实现了编码输出使用的只追加缓冲区。
package buffer

import (
	"io"
	"math/bits"
)

const (
	// DefaultBufferSize 是缓冲区的默认初始大小。
	DefaultBufferSize   = 1024     // 1KB
	bufferGrowThreshold = 4 * 1024 // 4KB
)

// Buffer 是只追加的字节缓冲区，实现了 io.Writer、io.StringWriter 与 io.ByteWriter。
//
// 写入只会追加到末尾；Finish/Bytes 返回当前内容的拷贝，不影响后续写入。
// Buffer 不是并发安全的，每次编码调用应使用独立的 Buffer。
type Buffer struct {
	buf []byte
}

// New 创建一个给定初始容量的 Buffer。
// size 会被向上取整为 2 的幂；size 为 0 时，第一次写入才分配内存。
func New(size int) *Buffer {
	if size <= 0 {
		return &Buffer{}
	}
	return &Buffer{buf: make([]byte, 0, ceilToPowerOfTwo(size))}
}

// Append 追加一段文本。
func (b *Buffer) Append(s string) {
	b.ensure(len(s))
	b.buf = append(b.buf, s...)
}

// AppendBytes 追加一段字节。
func (b *Buffer) AppendBytes(p []byte) {
	b.ensure(len(p))
	b.buf = append(b.buf, p...)
}

// AppendByte 追加单个字节。
func (b *Buffer) AppendByte(c byte) {
	b.ensure(1)
	b.buf = append(b.buf, c)
}

// Write 实现 io.Writer 接口，总是写入全部 p。
func (b *Buffer) Write(p []byte) (int, error) {
	b.AppendBytes(p)
	return len(p), nil
}

// WriteString 实现 io.StringWriter 接口。
func (b *Buffer) WriteString(s string) (int, error) {
	b.Append(s)
	return len(s), nil
}

// WriteByte 实现 io.ByteWriter 接口。
func (b *Buffer) WriteByte(c byte) error {
	b.AppendByte(c)
	return nil
}

// WriteTo 实现 io.WriterTo 接口，将当前内容写入 w，不清空缓冲区。
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// Len 返回已写入的字节数。
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap 返回底层切片的容量。
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Bytes 返回当前内容的拷贝。
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Finish 以字符串形式返回累计的全部内容。
func (b *Buffer) Finish() string {
	return string(b.buf)
}

// Reset 清空内容但保留已分配的容量。
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Grow 确保至少还能再写入 n 个字节而无需扩容。
func (b *Buffer) Grow(n int) {
	if n > 0 {
		b.ensure(n)
	}
}

func (b *Buffer) ensure(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	b.grow(len(b.buf) + n)
}

func (b *Buffer) grow(newCap int) {
	if n := cap(b.buf); n == 0 {
		if newCap <= DefaultBufferSize {
			newCap = DefaultBufferSize
		} else {
			newCap = ceilToPowerOfTwo(newCap)
		}
	} else {
		doubleCap := n + n
		if newCap <= doubleCap {
			if n < bufferGrowThreshold {
				newCap = doubleCap
			} else {
				// Check 0 < n to detect overflow and prevent an infinite loop.
				for 0 < n && n < newCap {
					n += n / 4
				}
				if n > 0 {
					newCap = n
				}
			}
		}
	}
	newBuf := make([]byte, len(b.buf), newCap)
	copy(newBuf, b.buf)
	b.buf = newBuf
}

// ceilToPowerOfTwo 将 n 向上取整为最接近的 2 的幂。
// 若 n 已经是 2 的幂，则直接返回 n。
func ceilToPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}
