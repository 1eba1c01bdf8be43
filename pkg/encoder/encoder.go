package encoder

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lk2023060901/encoder-go/pkg/log"
	"github.com/lk2023060901/encoder-go/pkg/metrics"
	"github.com/lk2023060901/encoder-go/pkg/util/conc"
	"github.com/lk2023060901/encoder-go/pkg/util/merr"
)

// Encoder 使用一份 Config 编码任意值。
//
// Encoder 创建后只读，可以被多个协程同时使用；每次编码调用拥有独立的
// 输出缓冲区与标签表，调用之间不共享状态。
type Encoder struct {
	cfg     Config
	escaper *Escaper
	opts    *options
	logger  *log.MLogger

	// producers 缓存 Hook 的查询结果，key 为 reflect.Type。
	producers sync.Map
}

// New 创建 Encoder。cfg 按值复制，之后对 cfg 的修改不影响 Encoder。
func New(cfg Config, opts ...Option) *Encoder {
	opt := defaultOptions()
	for _, o := range opts {
		o(opt)
	}

	logger := opt.logger
	if logger == nil {
		logger = log.With(log.FieldModule("encoder"), log.FieldFormat(cfg.Name))
	}

	return &Encoder{
		cfg:     cfg,
		escaper: NewEscaper(cfg.Escapes),
		opts:    opt,
		logger:  logger.With().WithRateGroup("encoder.failure."+cfg.Name, 1, 60),
	}
}

// Encode 使用 cfg 编码 v，等价于 New(cfg).Encode(v)。
func Encode(cfg Config, v any) (string, error) {
	return New(cfg).Encode(v)
}

// Config 返回 Encoder 使用的配置。
func (e *Encoder) Config() Config {
	return e.cfg
}

// Encode 编码 v 并返回完整文本。任何节点无法表示时返回 *EncodeError，且不返回部分输出。
func (e *Encoder) Encode(v any) (string, error) {
	buf := e.opts.pool.Get()
	defer e.opts.pool.Put(buf)

	if err := e.EncodeTo(buf, v); err != nil {
		return "", err
	}
	return buf.Finish(), nil
}

// EncodeBytes 与 Encode 相同，以字节切片返回结果。
func (e *Encoder) EncodeBytes(v any) ([]byte, error) {
	buf := e.opts.pool.Get()
	defer e.opts.pool.Put(buf)

	if err := e.EncodeTo(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo 将 v 的编码追加到 sink。
//
// 失败时 sink 中保留已写入的前缀，其中所有已打开的标签作用域都已关闭。
func (e *Encoder) EncodeTo(sink Sink, v any) error {
	start := sink.Len()
	s := &encodeState{
		enc:  e,
		cfg:  &e.cfg,
		sink: sink,
		call: newCall(e.cfg.Name),
	}
	err := s.encode(v)
	e.observe(sink.Len()-start, err)
	return err
}

// EncodeBatch 并发编码 values，结果与输入一一对应。
// 失败的值在结果中为空字符串，所有错误合并后返回。
func (e *Encoder) EncodeBatch(ctx context.Context, values []any) ([]string, error) {
	results := make([]string, len(values))
	if len(values) == 0 {
		return results, nil
	}

	pool := conc.NewPool[string](min(e.opts.concurrency, len(values)))
	defer pool.Release()

	futures := make([]*conc.Future[string], 0, len(values))
	for _, v := range values {
		futures = append(futures, pool.Submit(func() (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return e.Encode(v)
		}))
	}

	var errs []error
	for i, future := range futures {
		out, err := future.Await()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = out
	}
	return results, merr.Combine(errs...)
}

func (e *Encoder) observe(n int, err error) {
	if err == nil {
		if e.opts.metrics {
			metrics.ObserveEncode(e.cfg.Name, n, "", false)
		}
		return
	}

	reason := "unknown"
	if ee, ok := err.(*EncodeError); ok {
		reason = ee.Reason.String()
	}
	if e.opts.metrics {
		metrics.ObserveEncode(e.cfg.Name, 0, reason, true)
	}
	e.logger.RatedDebug(1, "encode failed", zap.String("reason", reason), zap.Error(err))
}
