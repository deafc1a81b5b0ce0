// Package xscope 提供按类型索引的环境上下文（ambient context）。
//
// 每个数据类型 T 拥有两类独立的槽位：
//   - 全局槽位：进程内唯一，所有 goroutine 可见
//   - 本地槽位：每个 goroutine 一个，仅创建它的 goroutine 可见
//
// 槽位本身不提供直接访问入口，只能通过 [Guard] 写入、通过访问器读取。
//
// # Guard
//
// Guard 在创建时把数据压入对应槽位的隐式栈，Release 时弹出并恢复之前的栈顶：
//
//	g := xscope.PushLocal(requestData{user: "alice"})
//	defer g.Release()
//
//	handle() // 调用链上任意位置都可通过 xscope.Top[requestData]() 读取
//
// 需要构造失败语义时使用 [NewLocal] / [NewGlobal]：构造函数先执行，
// 成功后才修改槽位，失败时槽位保持不变。
//
// 同一 (类型, 作用域) 的 Guard 必须按创建的逆序释放。xscope 不检测乱序释放，
// 乱序会破坏栈结构。Guard 不可复制，始终以指针形式持有。
//
// # 访问器
//
//	Local[T]()   - 当前 goroutine 本地栈顶，栈为空属于误用
//	Global[T]()  - 全局值，全局槽位为空属于误用
//	Top[T]()     - 本地栈非空时返回本地栈顶，否则返回全局值，两者皆空属于误用
//	LookupXxx[T]() - 对应的非致命版本，返回 (*T, bool)
//
// # 检查模式
//
// 默认构建中，误用会向 stderr 输出固定诊断信息并以状态码 2 终止进程：
//
//	XSCOPE FATAL ERROR: 'tried using inactive local context' (pkg.Type)
//
// 使用 -tags xscope_unchecked 构建时移除所有检查，误用时返回 nil 指针，
// 由调用方的解引用触发 panic。可通过 [Checked] 查询当前模式。
//
// # 并发
//
// 本地槽位由所属 goroutine 独占，无需同步。全局槽位没有任何同步保护：
// 在多个 goroutine 中并发创建或释放全局 Guard 属于数据竞争，
// 调用方需自行串行化（例如只在启动阶段设置全局上下文，或在外部加锁）。
//
// 不同类型之间完全隔离，不共享存储，也不会互相影响。
package xscope
