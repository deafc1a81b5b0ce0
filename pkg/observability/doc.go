// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，自动注入作用域日志字段
//   - xmetrics: 观测接口与 OpenTelemetry 实现，Observer 可按作用域绑定
//   - xtiming: 嵌套计时作用域，输出逐层耗时日志并记录指标
//   - xsampling: 采样策略
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 上下文字段通过 xscope 作用域传播，无需逐层传参
//   - 支持动态级别控制和采样策略
package observability
