package xscope_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

type intCtx struct {
	value int
}

// =============================================================================
// 基本场景
// =============================================================================

func TestNestedGlobalAndLocal(t *testing.T) {
	type scenarioCtx struct{ value int }

	outer := xscope.PushGlobal(scenarioCtx{value: 1})
	defer outer.Release()
	assert.Equal(t, 1, xscope.Global[scenarioCtx]().value)
	assert.Equal(t, 1, xscope.Top[scenarioCtx]().value)

	inner := xscope.PushGlobal(scenarioCtx{value: 5})
	assert.Equal(t, 5, xscope.Global[scenarioCtx]().value)
	assert.Equal(t, 5, xscope.Top[scenarioCtx]().value)

	local := xscope.PushLocal(scenarioCtx{value: 10})
	assert.Equal(t, 10, xscope.Local[scenarioCtx]().value)
	assert.Equal(t, 10, xscope.Top[scenarioCtx]().value)
	assert.Equal(t, 5, xscope.Global[scenarioCtx]().value, "本地 Guard 不影响全局访问器")

	nested := xscope.PushLocal(scenarioCtx{value: 15})
	assert.Equal(t, 15, xscope.Local[scenarioCtx]().value)
	assert.Equal(t, 15, xscope.Top[scenarioCtx]().value)
	nested.Release()

	assert.Equal(t, 10, xscope.Local[scenarioCtx]().value)
	local.Release()

	assert.Equal(t, 5, xscope.Top[scenarioCtx]().value)
	_, ok := xscope.LookupLocal[scenarioCtx]()
	assert.False(t, ok)

	inner.Release()
	assert.Equal(t, 1, xscope.Global[scenarioCtx]().value)
	assert.Equal(t, 1, xscope.Top[scenarioCtx]().value)
}

func TestLookupOnEmptySlots(t *testing.T) {
	type neverPushed struct{}

	p, ok := xscope.LookupLocal[neverPushed]()
	assert.False(t, ok)
	assert.Nil(t, p)

	p, ok = xscope.LookupGlobal[neverPushed]()
	assert.False(t, ok)
	assert.Nil(t, p)

	p, ok = xscope.LookupTop[neverPushed]()
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestLookupTopFallsBackToGlobal(t *testing.T) {
	type fallbackCtx struct{ name string }

	g := xscope.PushGlobal(fallbackCtx{name: "global"})
	defer g.Release()

	p, ok := xscope.LookupTop[fallbackCtx]()
	require.True(t, ok)
	assert.Equal(t, "global", p.name)

	l := xscope.PushLocal(fallbackCtx{name: "local"})
	p, ok = xscope.LookupTop[fallbackCtx]()
	require.True(t, ok)
	assert.Equal(t, "local", p.name)
	l.Release()

	p, ok = xscope.LookupTop[fallbackCtx]()
	require.True(t, ok)
	assert.Equal(t, "global", p.name)
}

func TestAccessorReturnsMutableReference(t *testing.T) {
	type counterCtx struct{ n int }

	g := xscope.PushLocal(counterCtx{})
	defer g.Release()

	xscope.Local[counterCtx]().n++
	xscope.Top[counterCtx]().n++
	assert.Equal(t, 2, g.Value().n)
}

// =============================================================================
// Guard 行为
// =============================================================================

func TestGuardKind(t *testing.T) {
	type kindCtx struct{}

	l := xscope.PushLocal(kindCtx{})
	defer l.Release()
	g := xscope.PushGlobal(kindCtx{})
	defer g.Release()

	assert.Equal(t, xscope.KindLocal, l.Kind())
	assert.Equal(t, xscope.KindGlobal, g.Kind())
	assert.Equal(t, "local", xscope.KindLocal.String())
	assert.Equal(t, "global", xscope.KindGlobal.String())
	assert.Equal(t, "Kind(7)", xscope.Kind(7).String())
}

func TestReleaseIsIdempotent(t *testing.T) {
	type idemCtx struct{ v int }

	outer := xscope.PushLocal(idemCtx{v: 1})
	defer outer.Release()

	inner := xscope.PushLocal(idemCtx{v: 2})
	inner.Release()
	inner.Release()

	assert.Equal(t, 1, xscope.Local[idemCtx]().v, "重复 Release 不能再次改写槽位")

	var nilGuard *xscope.Guard[idemCtx]
	assert.NotPanics(t, nilGuard.Release)
}

func TestReleaseClearsPayload(t *testing.T) {
	type payloadCtx struct{ data []byte }

	g := xscope.PushLocal(payloadCtx{data: make([]byte, 16)})
	v := g.Value()
	g.Release()
	assert.Nil(t, v.data)
}

func TestReleaseRunsWhilePanicking(t *testing.T) {
	type unwindCtx struct{ v int }

	base := xscope.PushLocal(unwindCtx{v: 1})
	defer base.Release()

	func() {
		defer func() {
			r := recover()
			assert.Equal(t, "boom", r)
		}()

		g := xscope.PushLocal(unwindCtx{v: 2})
		defer g.Release()

		assert.Equal(t, 2, xscope.Top[unwindCtx]().v)
		panic("boom")
	}()

	assert.Equal(t, 1, xscope.Top[unwindCtx]().v)
}

func TestDeepNestingRestoresEveryLevel(t *testing.T) {
	type depthCtx struct{ depth int }
	const depth = 10000

	guards := make([]*xscope.Guard[depthCtx], 0, depth)
	for i := range depth {
		guards = append(guards, xscope.PushLocal(depthCtx{depth: i}))
		require.Equal(t, i, xscope.Top[depthCtx]().depth)
	}

	for i := depth - 1; i >= 0; i-- {
		require.Equal(t, i, xscope.Local[depthCtx]().depth)
		guards[i].Release()
	}

	_, ok := xscope.LookupTop[depthCtx]()
	assert.False(t, ok)
	assert.Zero(t, xscope.LocalCellCount[depthCtx](), "本地栈清空后不应残留单元")
}

// =============================================================================
// 构造失败
// =============================================================================

func TestNewLocalConstructorFailureLeavesSlotsUnchanged(t *testing.T) {
	type failCtx struct{ value int }
	errBoom := errors.New("boom")

	g := xscope.PushGlobal(failCtx{value: 42})
	defer g.Release()

	guard, err := xscope.NewLocal(func() (failCtx, error) {
		return failCtx{value: 7}, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, guard)

	guard, err = xscope.NewGlobal(func() (failCtx, error) {
		return failCtx{}, errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, guard)

	assert.Equal(t, 42, xscope.Top[failCtx]().value)
	assert.Equal(t, 42, xscope.Global[failCtx]().value)
	_, ok := xscope.LookupLocal[failCtx]()
	assert.False(t, ok)
}

func TestNewLocalConstructorPanicLeavesSlotsUnchanged(t *testing.T) {
	type panicCtx struct{ value int }

	g := xscope.PushLocal(panicCtx{value: 3})
	defer g.Release()

	assert.Panics(t, func() {
		_, _ = xscope.NewLocal(func() (panicCtx, error) {
			panic("constructor failed")
		})
	})
	assert.Equal(t, 3, xscope.Top[panicCtx]().value)
}

func TestNewLocalSuccess(t *testing.T) {
	type builtCtx struct{ a, b int }

	build := func(a, b int) func() (builtCtx, error) {
		return func() (builtCtx, error) { return builtCtx{a: a, b: b}, nil }
	}

	g, err := xscope.NewLocal(build(1, 2))
	require.NoError(t, err)
	defer g.Release()

	assert.Equal(t, builtCtx{a: 1, b: 2}, *xscope.Local[builtCtx]())
	assert.Same(t, g.Value(), xscope.Local[builtCtx]())
}

func TestNilConstructor(t *testing.T) {
	type nilCtorCtx struct{}

	_, err := xscope.NewLocal[nilCtorCtx](nil)
	require.ErrorIs(t, err, xscope.ErrNilConstructor)
	_, err = xscope.NewGlobal[nilCtorCtx](nil)
	require.ErrorIs(t, err, xscope.ErrNilConstructor)
}

// =============================================================================
// 隔离性
// =============================================================================

func TestLocalInvisibleToOtherGoroutines(t *testing.T) {
	type isoCtx struct{ owner string }

	l := xscope.PushLocal(isoCtx{owner: "main"})
	defer l.Release()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := xscope.LookupLocal[isoCtx]()
		assert.False(t, ok, "其他 goroutine 的本地上下文不可见")

		own := xscope.PushLocal(isoCtx{owner: "worker"})
		defer own.Release()
		assert.Equal(t, "worker", xscope.Local[isoCtx]().owner)
	}()
	wg.Wait()

	assert.Equal(t, "main", xscope.Local[isoCtx]().owner)
}

func TestLocalCellsPerGoroutine(t *testing.T) {
	type cellCtx struct{ worker int }
	const workers = 16

	var pushed, done sync.WaitGroup
	hold := make(chan struct{})
	seen := make([]int, workers)

	pushed.Add(workers)
	done.Add(workers)
	for w := range workers {
		go func() {
			defer done.Done()
			g := xscope.PushLocal(cellCtx{worker: w})
			defer g.Release()

			pushed.Done()
			<-hold
			seen[w] = xscope.Local[cellCtx]().worker
		}()
	}

	// 所有 goroutine 同时持有本地 Guard，每个都必须有独立的单元
	pushed.Wait()
	assert.Equal(t, workers, xscope.LocalCellCount[cellCtx]())
	_, ok := xscope.LookupLocal[cellCtx]()
	assert.False(t, ok)

	close(hold)
	done.Wait()

	for w, got := range seen {
		assert.Equal(t, w, got, "worker %d", w)
	}
	assert.Zero(t, xscope.LocalCellCount[cellCtx]())
}

func TestGlobalVisibleToAllGoroutines(t *testing.T) {
	type sharedCtx struct{ value int }

	g := xscope.PushGlobal(sharedCtx{value: 99})
	defer g.Release()

	const workers = 16
	results := make([]int, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := xscope.PushLocal(sharedCtx{value: i})
			defer local.Release()

			// 本地 Guard 只遮蔽 Top，不影响 Global
			results[i] = xscope.Global[sharedCtx]().value + xscope.Top[sharedCtx]().value*1000
		}()
	}
	wg.Wait()

	for i, r := range results {
		assert.Equal(t, 99+i*1000, r)
	}
	assert.Zero(t, xscope.LocalCellCount[sharedCtx]())
}

func TestConcurrentLocalStacks(t *testing.T) {
	type workerCtx struct{ worker, level int }
	const (
		workers = 32
		levels  = 50
	)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var push func(level int)
			push = func(level int) {
				if level == levels {
					return
				}
				g := xscope.PushLocal(workerCtx{worker: w, level: level})
				defer g.Release()

				top := xscope.Local[workerCtx]()
				assert.Equal(t, w, top.worker)
				assert.Equal(t, level, top.level)
				push(level + 1)
				assert.Equal(t, level, xscope.Local[workerCtx]().level)
			}
			push(0)
		}()
	}
	wg.Wait()

	assert.Zero(t, xscope.LocalCellCount[workerCtx]())
}

func TestDistinctTypesDoNotInteract(t *testing.T) {
	type typeA struct{ v int }
	type typeB struct{ v int }

	b := xscope.PushGlobal(typeB{v: 2})
	defer b.Release()

	a := xscope.PushLocal(typeA{v: 1})
	assert.Equal(t, 2, xscope.Top[typeB]().v)
	_, ok := xscope.LookupLocal[typeB]()
	assert.False(t, ok)

	ag := xscope.PushGlobal(typeA{v: 3})
	assert.Equal(t, 2, xscope.Global[typeB]().v)
	ag.Release()
	a.Release()

	assert.Equal(t, 2, xscope.Top[typeB]().v)
	_, ok = xscope.LookupTop[typeA]()
	assert.False(t, ok)
}

// =============================================================================
// Scope 句柄
// =============================================================================

func TestScopeHandleSharesStorage(t *testing.T) {
	sc := xscope.For[intCtx]()

	g := sc.PushLocal(intCtx{value: 8})
	defer g.Release()

	assert.Equal(t, 8, xscope.Local[intCtx]().value)
	assert.Same(t, sc.Local(), xscope.For[intCtx]().Local())
	assert.Same(t, sc.Top(), g.Value())

	gg, err := sc.NewGlobal(func() (intCtx, error) { return intCtx{value: 9}, nil })
	require.NoError(t, err)
	defer gg.Release()
	assert.Equal(t, 9, sc.Global().value)
	assert.Equal(t, 8, sc.Top().value)
}

func TestPointerAndInterfacePayloads(t *testing.T) {
	type shared struct{ hits int }
	type greeter interface{ Greet() string }

	s := &shared{}
	g := xscope.PushLocal(s)
	defer g.Release()
	(*xscope.Local[*shared]()).hits++
	assert.Equal(t, 1, s.hits)

	ig := xscope.PushLocal[greeter](nil)
	defer ig.Release()
	p, ok := xscope.LookupLocal[greeter]()
	require.True(t, ok)
	assert.Nil(t, *p)
}
