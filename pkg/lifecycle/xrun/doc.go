// Package xrun 提供基于 errgroup + context 的进程生命周期管理。
//
// 当任一服务返回错误、收到终止信号或调用 Cancel 时，Group 的 context 被取消，
// 所有服务应监听 ctx.Done() 并退出。Wait 返回第一个错误或显式的取消原因。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("demo"))
//	g.GoWithName("worker", func(ctx context.Context) error {
//	    xlog.Info(ctx, "started") // 自动带上 group=demo service=worker
//	    <-ctx.Done()
//	    return ctx.Err()
//	})
//	err := g.Wait()
//
// # 日志作用域
//
// GoWithName 在服务 goroutine 上压入 xlog 本地字段（group、service），
// 服务内部通过 xlog 输出的日志自动携带这些字段，服务返回时字段随之弹出。
// 字段只对该 goroutine 可见，服务自行启动的子 goroutine 需要重新设置。
//
// # 信号
//
// Run / RunWithOptions 默认监听 DefaultSignals()，收到信号后以 *SignalError
// 作为取消原因，可用 errors.Is(err, xrun.ErrSignal) 判断。
package xrun
