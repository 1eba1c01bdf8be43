package encoder

import (
	"runtime"

	"github.com/lk2023060901/encoder-go/internal/pool/bufferpool"
	"github.com/lk2023060901/encoder-go/pkg/log"
)

type options struct {
	logger      *log.MLogger
	metrics     bool
	pool        BufferPool
	concurrency int
}

// Option 用于配置 Encoder。
type Option func(opt *options)

func defaultOptions() *options {
	return &options{
		metrics:     true,
		pool:        bufferpool.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// WithLogger 指定记录编码失败的 Logger，默认使用全局 Logger。
func WithLogger(logger *log.MLogger) Option {
	return func(opt *options) {
		opt.logger = logger
	}
}

// WithMetrics 控制是否上报编码指标，默认开启。
func WithMetrics(enabled bool) Option {
	return func(opt *options) {
		opt.metrics = enabled
	}
}

// WithBufferPool 指定输出缓冲区池。
func WithBufferPool(pool BufferPool) Option {
	return func(opt *options) {
		if pool != nil {
			opt.pool = pool
		}
	}
}

// WithConcurrency 指定 EncodeBatch 的最大并发数。
func WithConcurrency(n int) Option {
	return func(opt *options) {
		if n > 0 {
			opt.concurrency = n
		}
	}
}
