package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xambient/pkg/config/xconf"
	"github.com/omeyang/xambient/pkg/observability/xlog"
)

// app 保存一次命令执行期间的共享状态。
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg    appConfig
	conf   xconf.Config
	logger xlog.LoggerWithLevel

	// release 按压入的逆序执行
	release []func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, cfg: defaultAppConfig()}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "xscopedemo",
		Usage:     "作用域上下文演示与自检",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（YAML/JSON）",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
			},
		},
		Before:   a.before,
		After:    a.after,
		Commands: a.commands(),
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(a.stderr, err)
			}
		},
	}
}

// before 加载配置、构建 Logger，并把它们绑定为进程级作用域。
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, conf, err := loadAppConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	a.cfg, a.conf = cfg, conf

	logger, cleanup, err := buildLogger(cfg.Log, a.stderr)
	if err != nil {
		return ctx, &usageError{msg: err.Error()}
	}
	a.logger = logger
	a.onExit(cleanup)

	xlog.SetDefault(logger)
	a.onExit(func() error {
		xlog.ResetDefault()
		return nil
	})

	fields := xlog.WithGlobalFields(slog.String("app", cmd.Name))
	a.onExit(releaser(fields.Release))

	if conf != nil {
		g := xconf.UseGlobal(conf)
		a.onExit(releaser(g.Release))
	}
	return ctx, nil
}

// after 逆序释放 before 中建立的作用域。
func (a *app) after(context.Context, *cli.Command) error {
	var errs []error
	for i := len(a.release) - 1; i >= 0; i-- {
		errs = append(errs, a.release[i]())
	}
	a.release = nil
	return errors.Join(errs...)
}

func (a *app) onExit(fn func() error) {
	a.release = append(a.release, fn)
}

func releaser(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}

func buildLogger(cfg logConfig, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format)
	if cfg.File != "" {
		b.SetRotation(cfg.File, xlog.RotationOptions{
			MaxSizeMB: cfg.MaxSizeMB,
			Compress:  cfg.Compress,
		})
	}
	return b.Build()
}
