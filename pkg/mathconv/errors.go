package mathconv

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrInvalidSymbol 符号表条目格式错误
	ErrInvalidSymbol = errors.New("invalid symbol entry")

	// ErrTableConflict 符号表条目与已有条目或后续阶段冲突
	ErrTableConflict = errors.New("symbol table conflict")
)

// TableError 符号表校验错误
type TableError struct {
	Table   TableKind
	Command string
	Reason  string
	Err     error
}

// Error 实现error接口
func (e *TableError) Error() string {
	return fmt.Sprintf("%s table: %s: %s", e.Table, e.Command, e.Reason)
}

// Unwrap 返回原因错误
func (e *TableError) Unwrap() error {
	return e.Err
}
