package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	encoderMetricsRegisterOnce sync.Once

	EncodeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: encoderNamespace,
		Name:      "encode_total",
		Help:      "encode 调用次数，按输出格式与结果区分",
	}, []string{formatLabelName, statusLabelName})

	EncodeFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: encoderNamespace,
		Name:      "encode_failures_total",
		Help:      "encode 失败次数，按输出格式与失败原因区分",
	}, []string{formatLabelName, reasonLabelName})

	EncodeOutputBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: encoderNamespace,
		Name:      "output_bytes",
		Help:      "成功编码的输出字节数",
		Buckets:   sizeBuckets,
	}, []string{formatLabelName})
)

// RegisterEncoderMetrics 将编码相关的指标注册到 r 中，只生效一次。
func RegisterEncoderMetrics(r prometheus.Registerer) {
	encoderMetricsRegisterOnce.Do(func() {
		r.MustRegister(EncodeTotal)
		r.MustRegister(EncodeFailures)
		r.MustRegister(EncodeOutputBytes)
	})
}

// ObserveEncode 记录一次编码调用的结果。reason 仅在失败时使用。
func ObserveEncode(format string, outputBytes int, reason string, failed bool) {
	if failed {
		EncodeTotal.WithLabelValues(format, FailLabel).Inc()
		EncodeFailures.WithLabelValues(format, reason).Inc()
		return
	}
	EncodeTotal.WithLabelValues(format, SuccessLabel).Inc()
	EncodeOutputBytes.WithLabelValues(format).Observe(float64(outputBytes))
}
