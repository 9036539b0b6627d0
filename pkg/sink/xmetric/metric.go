package xmetric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/logsink/pkg/sink/xsink"
)

const (
	defaultInstrumentationName = "github.com/omeyang/logsink/xmetric"

	metricEmitTotal  = "logsink.emit.total"
	metricEmitErrors = "logsink.emit.errors"
	metricEmitBytes  = "logsink.emit.bytes"
)

type config struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义指标装饰器的配置选项。
type Option func(*config)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewSink 用 OpenTelemetry 指标装饰下游 sink
//
// 每次 Emit 记录三个计数器: 总条数、失败条数、写入字节数。
// 指标按级别打 level 标签，失败时额外附带 status=error。
// 指标记录永不影响 Emit 的返回值。
func NewSink(inner xsink.Sink, opts ...Option) (xsink.Sink, error) {
	if inner == nil {
		return nil, xsink.ErrNilSink
	}

	cfg := &config{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	total, err := meter.Int64Counter(
		metricEmitTotal,
		metric.WithDescription("total emitted log lines"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetric: create counter failed: %w", err)
	}

	errs, err := meter.Int64Counter(
		metricEmitErrors,
		metric.WithDescription("failed log line emits"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetric: create counter failed: %w", err)
	}

	bytes, err := meter.Int64Counter(
		metricEmitBytes,
		metric.WithDescription("emitted log bytes (text only, excluding framing)"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("xmetric: create counter failed: %w", err)
	}

	return &metricSink{
		inner: inner,
		total: total,
		errs:  errs,
		bytes: bytes,
	}, nil
}

type metricSink struct {
	inner xsink.Sink
	total metric.Int64Counter
	errs  metric.Int64Counter
	bytes metric.Int64Counter
}

// Emit 实现 xsink.Sink 接口
func (m *metricSink) Emit(line xsink.Line) error {
	err := m.inner.Emit(line)

	ctx := context.Background()
	levelAttr := metric.WithAttributes(
		attribute.String("level", line.Level.String()),
	)
	m.total.Add(ctx, 1, levelAttr)
	if err != nil {
		m.errs.Add(ctx, 1, levelAttr)
	} else {
		m.bytes.Add(ctx, int64(len(line.Text)), levelAttr)
	}

	return err
}

// Close 实现 io.Closer 接口，透传下游关闭结果
func (m *metricSink) Close() error {
	return m.inner.Close()
}
