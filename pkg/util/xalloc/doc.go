// Package xalloc 提供按作用域切换的字节分配器。
//
// Resource 抽象一块内存来源：Heap 直接使用 make 分配，Monotonic 在调用方提供的
// 缓冲区上顺序分配，耗尽后转交上游 Resource。
//
// 通过 Use / UseGlobal 把 Resource 绑定到当前 goroutine 或整个进程，
// 下游代码用 Current 或 Bytes 取得"当前"分配器，无需逐层传参：
//
//	mono := xalloc.NewMonotonic(make([]byte, 512), xalloc.Heap())
//	g := xalloc.Use(mono)
//	defer g.Release()
//
//	buf, err := xalloc.Bytes(64) // 来自 mono
//
// # 注意事项
//
//   - Current 在没有任何绑定时按 xscope 的检查模式处理：默认构建直接终止进程
//   - 需要容错的调用方使用 CurrentOr
//   - 对齐针对返回切片首字节的实际地址，对齐填充计入 Monotonic.Used；返回切片的 cap 等于 len
package xalloc
