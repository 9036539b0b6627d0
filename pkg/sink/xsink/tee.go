package xsink

import (
	"errors"
	"fmt"
)

// teeSink 将日志行扇出到多个下游 sink 的装饰器
type teeSink struct {
	sinks []Sink
}

// NewTeeSink 创建扇出 sink
//
// Emit 依次写入所有下游 sink：任一失败不会中断其余写入，
// 所有错误通过 errors.Join 聚合返回。
// Close 关闭所有下游 sink，同样聚合错误；幂等性由下游保证。
func NewTeeSink(sinks ...Sink) (Sink, error) {
	if len(sinks) == 0 {
		return nil, ErrNoSinks
	}
	for i, s := range sinks {
		if s == nil {
			return nil, fmt.Errorf("%w: sink #%d is nil", ErrNilSink, i)
		}
	}

	// 复制切片，防止调用方后续修改
	owned := make([]Sink, len(sinks))
	copy(owned, sinks)

	return &teeSink{sinks: owned}, nil
}

// Emit 写入所有下游 sink
func (t *teeSink) Emit(line Line) error {
	var errs []error
	for _, s := range t.sinks {
		if err := s.Emit(line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close 关闭所有下游 sink
func (t *teeSink) Close() error {
	var errs []error
	for _, s := range t.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
