package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "smoke",
			Usage: "运行嵌套作用域自检场景",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return a.cmdSmoke(ctx)
			},
		},
		{
			Name:  "timing",
			Usage: "运行模拟器并输出嵌套计时",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "rounds",
					Usage: "模拟器运行轮数，覆盖 timing.rounds",
				},
				&cli.BoolFlag{
					Name:  "silent",
					Usage: "只汇总指标，不输出逐层耗时日志",
				},
				&cli.IntFlag{
					Name:  "sample-every",
					Usage: "每 N 轮输出一次耗时日志，覆盖 timing.sample_every",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts := a.cfg.Timing
				if cmd.IsSet("rounds") {
					opts.Rounds = cmd.Int("rounds")
				}
				if cmd.IsSet("silent") {
					opts.Silent = cmd.Bool("silent")
				}
				if cmd.IsSet("sample-every") {
					opts.SampleEvery = cmd.Int("sample-every")
				}
				return a.cmdTiming(ctx, opts)
			},
		},
		{
			Name:  "alloc",
			Usage: "对比 heap 与 monotonic 分配器",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "buffer",
					Usage: "monotonic 缓冲区字节数，覆盖 alloc.buffer_size",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				size := a.cfg.Alloc.BufferSize
				if cmd.IsSet("buffer") {
					size = cmd.Int("buffer")
				}
				return a.cmdAlloc(ctx, size)
			},
		},
		{
			Name:  "isolation",
			Usage: "多 goroutine 并发嵌套本地作用域，验证互不可见",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Usage: "goroutine 数量，覆盖 isolation.workers",
				},
				&cli.IntFlag{
					Name:  "depth",
					Usage: "每个 goroutine 的嵌套深度，覆盖 isolation.depth",
				},
				&cli.BoolFlag{
					Name:  "watch",
					Usage: "校验完成后持续运行并监视配置文件，热更新日志级别（需要 --config）",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts := a.cfg.Isolation
				if cmd.IsSet("workers") {
					opts.Workers = cmd.Int("workers")
				}
				if cmd.IsSet("depth") {
					opts.Depth = cmd.Int("depth")
				}
				return a.cmdIsolation(ctx, opts, cmd.Bool("watch"))
			},
		},
	}
}
