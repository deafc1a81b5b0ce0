package main

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xambient/pkg/observability/xmetrics"
	"github.com/omeyang/xambient/pkg/observability/xsampling"
	"github.com/omeyang/xambient/pkg/observability/xtiming"
)

// simulator 的每个步骤都开启自己的计时作用域，嵌套深度由作用域栈推导。
type simulator struct {
	work int
}

func (s simulator) spin() {
	sum := 0
	for i := range s.work {
		sum += i
	}
	_ = sum
}

func (s simulator) step0(ctx context.Context) {
	defer xtiming.Start(ctx, "step0").Stop()
	s.spin()
}

func (s simulator) step1(ctx context.Context) {
	defer xtiming.Start(ctx, "step1").Stop()

	func() {
		defer xtiming.Start(ctx, "step1a").Stop()
		s.spin()
	}()
	func() {
		defer xtiming.Start(ctx, "step1b").Stop()
		s.spin()
	}()
}

func (s simulator) step2(ctx context.Context) {
	defer xtiming.Start(ctx, "step2").Stop()
	s.spin()
}

func (s simulator) client(ctx context.Context, opts ...xtiming.Option) {
	defer xtiming.Start(ctx, "client", opts...).Stop()

	s.step0(ctx)
	s.step1(ctx)
	s.step2(ctx)
}

// opSummary 是单个计时标签的汇总。
type opSummary struct {
	operation string
	count     uint64
	total     time.Duration
}

func (a *app) cmdTiming(ctx context.Context, opts timingConfig) error {
	if opts.Rounds < 1 {
		return &usageError{msg: fmt.Sprintf("rounds 必须为正数: %d", opts.Rounds)}
	}
	sampler, err := xsampling.NewCountSampler(opts.SampleEvery)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.WithoutCancel(ctx)) }()

	obs, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
	if err != nil {
		return err
	}
	g := xmetrics.Use(obs)
	defer g.Release()

	sim := simulator{work: 10_000}
	for range opts.Rounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		sim.client(ctx, xtiming.WithSilent(opts.Silent), xtiming.WithSampler(sampler))
	}

	summary, err := collectTiming(ctx, reader)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%-8s %6s %12s\n", "label", "count", "total")
	for _, s := range summary {
		fmt.Fprintf(a.stdout, "%-8s %6d %12s\n", s.operation, s.count, s.total)
	}
	return nil
}

// collectTiming 从 reader 读取 xtiming 的耗时直方图，按标签排序返回。
func collectTiming(ctx context.Context, reader sdkmetric.Reader) ([]opSummary, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	var out []opSummary
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			hist, ok := m.Data.(metricdata.Histogram[float64])
			if !ok {
				continue
			}
			for _, dp := range hist.DataPoints {
				op, _ := dp.Attributes.Value("operation")
				out = append(out, opSummary{
					operation: op.AsString(),
					count:     dp.Count,
					total:     time.Duration(dp.Sum * float64(time.Second)),
				})
			}
		}
	}
	slices.SortFunc(out, func(a, b opSummary) int {
		return cmp.Compare(a.operation, b.operation)
	})
	return out, nil
}
