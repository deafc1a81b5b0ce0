// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xalloc: 按作用域切换的字节分配器，heap 与 monotonic 缓冲区实现
package util
