package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/omeyang/xambient/pkg/observability/xlog"
	"github.com/omeyang/xambient/pkg/util/xalloc"
)

// fillInts 从当前分配器申请 n 个 uint32 并写入 0..n-1。
func fillInts(w io.Writer, n int) error {
	r := xalloc.Current()
	buf, err := r.Allocate(n*4, 4)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "using %s resource:", r.Name())
	for i := range n {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(i))
		fmt.Fprintf(w, " %d", binary.LittleEndian.Uint32(buf[i*4:]))
	}
	fmt.Fprintln(w)
	return nil
}

func (a *app) cmdAlloc(ctx context.Context, bufferSize int) error {
	if bufferSize < 0 {
		return &usageError{msg: fmt.Sprintf("buffer 不能为负数: %d", bufferSize)}
	}

	gg := xalloc.UseGlobal(xalloc.Heap())
	defer gg.Release()

	if err := fillInts(a.stdout, 6); err != nil {
		return err
	}

	mono := xalloc.NewMonotonic(make([]byte, bufferSize), xalloc.Heap())
	err := func() error {
		lg := xalloc.Use(mono)
		defer lg.Release()
		return fillInts(a.stdout, 6)
	}()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "monotonic: used=%d remaining=%d fallbacks=%d\n",
		mono.Used(), mono.Remaining(), mono.Fallbacks())
	xlog.Info(ctx, "alloc finished",
		xlog.Operation("alloc"),
		slog.Int("buffer", bufferSize),
		slog.Int("fallbacks", mono.Fallbacks()),
	)
	return nil
}
