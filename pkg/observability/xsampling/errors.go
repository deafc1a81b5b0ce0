package xsampling

import "errors"

var (
	// ErrInvalidRate 表示采样比率不在 [0.0, 1.0] 范围内。
	ErrInvalidRate = errors.New("xsampling: rate must be in [0.0, 1.0]")

	// ErrInvalidCount 表示 CountSampler 的采样间隔小于 1。
	ErrInvalidCount = errors.New("xsampling: count n must be >= 1")
)
