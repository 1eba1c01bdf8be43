package encoder

import (
	"github.com/lk2023060901/encoder-go/pkg/buffer"
)

// Sink 是引擎写入输出的只追加缓冲区。
type Sink interface {
	Append(s string)
	AppendByte(c byte)
	AppendBytes(p []byte)
	Len() int
	// Finish 返回已累计的全部文本。
	Finish() string
}

// BufferPool 提供可复用的输出缓冲区。
type BufferPool interface {
	Get() *buffer.Buffer
	Put(b *buffer.Buffer)
}

var _ Sink = (*buffer.Buffer)(nil)
