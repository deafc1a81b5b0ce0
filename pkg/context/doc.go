// Package context 提供作用域上下文相关的子包。
//
// 子包列表：
//   - xscope: 按类型划分的全局 / goroutine 本地作用域栈，RAII 风格的 Guard 压入与恢复
//
// 设计原则：
//   - 作用域值在 Guard 存活期间可见，Release 后恢复为之前的值
//   - 不同类型互不影响，无反射、无类型擦除
//   - 误用（读取空作用域）默认快速失败，可通过构建标签关闭检查
package context
