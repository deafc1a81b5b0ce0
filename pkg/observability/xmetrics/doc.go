// Package xmetrics 提供最小化的观测接口（metrics + tracing）。
//
// 业务代码只依赖 Observer/Span/Attr 接口，默认实现基于 OpenTelemetry。
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xtiming",
//		Operation: "step1",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 环境 Observer
//
// Observer 可以通过 xscope 在调用链上隐式传播：
//
//	g := xmetrics.UseGlobal(obs) // 进程启动时设置
//	defer g.Release()
//
//	xmetrics.Current() // 任意位置获取，未设置时返回 NoopObserver
//
// # 指标命名
//
//   - xambient.scope.total    （计数，属性 component / operation / status）
//   - xambient.scope.duration （直方图，单位秒）
package xmetrics
