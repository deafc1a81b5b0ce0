package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omeyang/xambient/pkg/context/xscope"
	"github.com/omeyang/xambient/pkg/observability/xlog"
)

// smokeValue 仅供自检使用，避免与其他包的作用域类型相互影响。
type smokeValue int

type smokeCheck struct {
	name string
	got  int
	want int
}

func (c smokeCheck) ok() bool { return c.got == c.want }

var errSmokeCtor = errors.New("smoke: constructor failed")

// runSmoke 依次执行嵌套场景并记录每一步的观测值，-1 表示不可见。
func runSmoke() []smokeCheck {
	var checks []smokeCheck
	record := func(name string, p *smokeValue, want int) {
		got := -1
		if p != nil {
			got = int(*p)
		}
		checks = append(checks, smokeCheck{name: name, got: got, want: want})
	}
	lookup := func(p *smokeValue, ok bool) *smokeValue {
		if !ok {
			return nil
		}
		return p
	}

	outer := xscope.PushGlobal(smokeValue(1))
	record("global=1", xscope.Global[smokeValue](), 1)

	inner := xscope.PushGlobal(smokeValue(5))
	record("nested global=5", xscope.Global[smokeValue](), 5)

	local := xscope.PushLocal(smokeValue(10))
	record("local top=10", xscope.Top[smokeValue](), 10)
	record("global unchanged=5", xscope.Global[smokeValue](), 5)

	seen := make(chan *smokeValue)
	go func() {
		seen <- lookup(xscope.LookupLocal[smokeValue]())
	}()
	record("local hidden from other goroutine", <-seen, -1)

	local.Release()
	record("top after local release=5", xscope.Top[smokeValue](), 5)

	inner.Release()
	record("global after inner release=1", xscope.Global[smokeValue](), 1)

	_, err := xscope.NewLocal(func() (smokeValue, error) { return 0, errSmokeCtor })
	failed := 0
	if errors.Is(err, errSmokeCtor) {
		failed = 1
	}
	checks = append(checks, smokeCheck{name: "constructor error returned", got: failed, want: 1})
	record("top after failed constructor=1", xscope.Top[smokeValue](), 1)

	outer.Release()
	record("empty after release", lookup(xscope.LookupTop[smokeValue]()), -1)

	return checks
}

func (a *app) cmdSmoke(ctx context.Context) error {
	checks := runSmoke()

	failed := 0
	for _, c := range checks {
		if c.ok() {
			fmt.Fprintf(a.stdout, "ok    %s\n", c.name)
			continue
		}
		failed++
		fmt.Fprintf(a.stdout, "FAIL  %s: got %d, want %d\n", c.name, c.got, c.want)
	}

	xlog.Info(ctx, "smoke finished",
		xlog.Operation("smoke"),
		xlog.Count(int64(len(checks))),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}
