package writer

import (
	"context"
)

// Writer 单条同步写入, 返回即表示下游已确认
type Writer[T any] interface {
	Write(ctx context.Context, item T) error
	Close() error
}

// EncodeError 数据本身无法序列化, 与下游连接无关, 重试没有意义
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encode item: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
