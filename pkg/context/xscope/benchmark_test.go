package xscope_test

import (
	"testing"

	"github.com/omeyang/xambient/pkg/context/xscope"
)

type benchCtx struct{ n int }

func BenchmarkPushReleaseLocal(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := xscope.PushLocal(benchCtx{n: i})
		g.Release()
	}
}

func BenchmarkPushReleaseGlobal(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g := xscope.PushGlobal(benchCtx{n: i})
		g.Release()
	}
}

func BenchmarkTopLocal(b *testing.B) {
	g := xscope.PushLocal(benchCtx{n: 1})
	defer g.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = xscope.Top[benchCtx]().n
	}
}

func BenchmarkTopGlobalViaHandle(b *testing.B) {
	sc := xscope.For[benchCtx]()
	g := sc.PushGlobal(benchCtx{n: 1})
	defer g.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sc.Top().n
	}
}
