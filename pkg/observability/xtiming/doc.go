// Package xtiming 提供基于 xscope 的作用域计时。
//
// 每个 [Timer] 在当前 goroutine 的本地栈上压入一个 [Frame]，Stop 时记录耗时并弹出：
//
//	func (s *simulator) step1(ctx context.Context) {
//		defer xtiming.Start(ctx, "step1").Stop()
//		...
//	}
//
// 嵌套的 Timer 自动形成层级（Depth 递增），日志按层级缩进：
//
//	-------- step1a took 12us
//	---- step1 took 40us
//
// 子 Timer 未显式配置时继承父 Timer 的 Logger、Observer 和时钟；
// 顶层 Timer 默认使用 xlog.Default() 与 xmetrics.Current()。
//
// Timer 必须在创建它的 goroutine 中按创建逆序 Stop。
package xtiming
