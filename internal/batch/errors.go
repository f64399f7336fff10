package batch

import "errors"

var (
	// ErrNotDirectory 输入路径不是目录
	ErrNotDirectory = errors.New("not a directory")

	// ErrInvalidOutput 输出路径已存在但不是目录
	ErrInvalidOutput = errors.New("invalid output directory")
)
