// Package xconf 提供基于 koanf 的配置加载、热重载与作用域绑定。
//
// # 加载
//
//   - New：从文件加载，按扩展名识别 YAML（.yaml/.yml）或 JSON（.json）
//   - NewFromBytes：从字节数据加载，需显式指定格式
//
// Reload 解析成功后原子替换底层 koanf 实例，解析失败时保留旧配置。
// Client() 返回的实例是快照，Reload 之后仍可用但数据已过期，建议每次使用时重新获取。
//
// # 监视
//
// Watch 基于 fsnotify 监视配置文件所在目录，内置防抖，兼容编辑器的原子写入。
// Stop 返回后不再触发回调。
//
// # 作用域
//
// Use / UseGlobal 把 Config 绑定到当前 goroutine 或整个进程，
// 下游代码通过 Current 读取，无需逐层传参。本地绑定优先于全局绑定。
package xconf
