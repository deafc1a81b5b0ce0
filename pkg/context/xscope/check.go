package xscope

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// exitCode 是误用检查失败时的进程退出码，与 Go 运行时致命错误一致。
const exitCode = 2

// 测试通过 export_test.go 替换。
var (
	fatalOutput io.Writer = os.Stderr
	exit                  = os.Exit
)

// Checked 报告当前构建是否启用了误用检查。
func Checked() bool {
	return checksEnabled
}

// fail 输出诊断信息并终止进程。
func fail[T any](check string) {
	fmt.Fprintf(fatalOutput, "XSCOPE FATAL ERROR: '%s' (%s)\n", check, typeName[T]())
	exit(exitCode)
}

// typeName 返回 T 的可读名称。使用 *T 以覆盖 T 为接口类型的情况。
func typeName[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")
}
