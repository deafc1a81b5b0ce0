package xscope_test

import (
	"fmt"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

type requestInfo struct {
	User string
}

func handle() {
	fmt.Println("user:", xscope.Top[requestInfo]().User)
}

// Example 演示全局与本地上下文的嵌套与恢复。
func Example() {
	g := xscope.PushGlobal(requestInfo{User: "system"})
	defer g.Release()

	handle()

	func() {
		l := xscope.PushLocal(requestInfo{User: "alice"})
		defer l.Release()
		handle()
	}()

	handle()

	// Output:
	// user: system
	// user: alice
	// user: system
}

// ExampleNewLocal 演示构造失败时槽位保持不变。
func ExampleNewLocal() {
	type limits struct{ max int }

	newLimits := func(n int) func() (limits, error) {
		return func() (limits, error) {
			if n <= 0 {
				return limits{}, fmt.Errorf("invalid max %d", n)
			}
			return limits{max: n}, nil
		}
	}

	g, _ := xscope.NewLocal(newLimits(10))
	defer g.Release()

	_, err := xscope.NewLocal(newLimits(-1))
	fmt.Println(err)
	fmt.Println("max:", xscope.Local[limits]().max)

	// Output:
	// invalid max -1
	// max: 10
}

// ExampleFor 演示通过句柄复用同一类型的槽位。
func ExampleFor() {
	type tenant struct{ id string }
	scope := xscope.For[tenant]()

	g := scope.PushLocal(tenant{id: "t-1"})
	defer g.Release()

	t, ok := scope.LookupTop()
	fmt.Println(t.id, ok)

	// Output:
	// t-1 true
}
