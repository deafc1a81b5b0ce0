package xalloc

import "errors"

var (
	// ErrExhausted 表示 Monotonic 缓冲区已耗尽且没有上游 Resource。
	ErrExhausted = errors.New("xalloc: buffer exhausted")

	// ErrInvalidSize 表示申请的大小为负数。
	ErrInvalidSize = errors.New("xalloc: invalid size")

	// ErrInvalidAlign 表示对齐值不是 2 的正整数次幂。
	ErrInvalidAlign = errors.New("xalloc: alignment must be a positive power of two")
)
