// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、轮转）
//   - 自动注入环境日志字段（EnrichHandler，默认启用）
//   - 动态级别调整（运行时热更新）
//   - 全局 Logger 便利函数
//
// # 环境日志字段
//
// 日志字段可以通过 xscope 在调用链上隐式传播，无需层层传递 Logger：
//
//	g := xlog.WithFields(slog.String("job", "reindex"))
//	defer g.Release()
//
//	worker() // worker 内部的所有日志都带有 job=reindex
//
// [WithFields] 压入当前 goroutine 的本地字段集，继承外层可见字段；
// [WithGlobalFields] 压入进程级字段集，对所有 goroutine 可见。
// 本地字段集遮蔽全局字段集（本地字段集在创建时已继承当时可见的全局字段）。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，后续 Set 操作被跳过）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevel(xlog.LevelDebug).
//		SetFormat("json").
//		SetRotation("/var/log/app.log", xlog.RotationOptions{MaxSizeMB: 100}).
//		Build()
//	defer cleanup()
//
// # 全局 Logger
//
//   - [Default]: 当前可见的 Logger，作用域绑定优先，否则为进程 Logger（惰性初始化：stderr、Info 级别、text 格式）
//   - [Use]: 为当前 goroutine 绑定 Logger，Guard 释放后恢复
//   - [SetDefault]: 替换进程 Logger（nil 会被忽略）
//   - [ResetDefault]: 重置为未初始化状态（仅用于测试）
//   - [Debug]、[Info]、[Warn]、[Error]: 全局便利函数
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// 可通过 [ParseLevel] 从字符串解析，Level 实现 encoding.TextUnmarshaler，
// 可直接用于配置反序列化。
package xlog
