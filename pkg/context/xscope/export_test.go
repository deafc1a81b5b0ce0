package xscope

import "bytes"

type exitPanic struct{ code int }

// CaptureFatal 执行 fn，拦截其中触发的误用检查（仅用于测试）。
//
// 检查失败时返回诊断输出和退出码，fatal 为 true；否则 fatal 为 false。
// 替换的是包级钩子，调用方不可并行使用。
func CaptureFatal(fn func()) (msg string, code int, fatal bool) {
	var buf bytes.Buffer
	prevOut, prevExit := fatalOutput, exit
	fatalOutput = &buf
	exit = func(c int) { panic(exitPanic{code: c}) }

	defer func() {
		fatalOutput, exit = prevOut, prevExit
		if r := recover(); r != nil {
			ep, ok := r.(exitPanic)
			if !ok {
				panic(r)
			}
			msg, code, fatal = buf.String(), ep.code, true
		}
	}()

	fn()
	return buf.String(), 0, false
}

// LocalCellCount 返回类型 T 当前登记的 goroutine 本地单元数量（仅用于测试）。
func LocalCellCount[T any]() int {
	n := 0
	slotsFor[T]().locals.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
