// xscopedemo 演示并自检 xscope 的作用域上下文及其客户端包。
//
// 用法:
//
//	xscopedemo [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（YAML/JSON，可选）
//	    --log-level   日志级别 (debug/info/warn/error)，覆盖配置文件
//	    --log-format  日志格式 (text/json)，覆盖配置文件
//
// 命令:
//
//	smoke          运行嵌套作用域自检场景，失败时退出码为 1
//	timing         运行模拟器并输出嵌套计时
//	alloc          对比 heap 与 monotonic 分配器
//	isolation      多 goroutine 并发嵌套本地作用域，验证互不可见
//
// 退出码:
//
//	0: 成功
//	1: 自检失败或运行错误
//	2: 参数错误
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	os.Exit(run(ctx, os.Args, os.Stdout, os.Stderr))
}

// run 执行命令并把错误映射为退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	err := a.command().Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// exitError 表示命令已完成输出，只需设置非零退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数错误。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// setupSignalHandler 第一次信号取消 context，第二次信号强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
