package main

import (
	"fmt"
	"time"

	"github.com/omeyang/xambient/pkg/config/xconf"
)

// appConfig 是 xscopedemo 的配置文件结构。
type appConfig struct {
	Log       logConfig       `koanf:"log"`
	Timing    timingConfig    `koanf:"timing"`
	Alloc     allocConfig     `koanf:"alloc"`
	Isolation isolationConfig `koanf:"isolation"`
}

type logConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	File      string `koanf:"file"`
	MaxSizeMB int    `koanf:"max_size_mb"`
	Compress  bool   `koanf:"compress"`
}

type timingConfig struct {
	Rounds      int  `koanf:"rounds"`
	Silent      bool `koanf:"silent"`
	SampleEvery int  `koanf:"sample_every"`
}

type allocConfig struct {
	BufferSize int `koanf:"buffer_size"`
}

type isolationConfig struct {
	Workers   int           `koanf:"workers"`
	Depth     int           `koanf:"depth"`
	Heartbeat time.Duration `koanf:"heartbeat"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Log:       logConfig{Level: "info", Format: "text"},
		Timing:    timingConfig{Rounds: 1, SampleEvery: 1},
		Alloc:     allocConfig{BufferSize: 512},
		Isolation: isolationConfig{Workers: 8, Depth: 64, Heartbeat: 5 * time.Second},
	}
}

// loadAppConfig 读取配置文件并覆盖默认值。path 为空时返回默认配置与 nil Config。
func loadAppConfig(path string) (appConfig, xconf.Config, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil, nil
	}

	conf, err := xconf.New(path)
	if err != nil {
		return cfg, nil, err
	}
	if err := conf.Unmarshal("", &cfg); err != nil {
		return cfg, nil, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, conf, nil
}

func (c appConfig) validate() error {
	switch {
	case c.Timing.Rounds < 1 || c.Timing.SampleEvery < 1:
		return &usageError{msg: fmt.Sprintf("timing.rounds/sample_every 必须为正数: %d/%d",
			c.Timing.Rounds, c.Timing.SampleEvery)}
	case c.Alloc.BufferSize < 0:
		return &usageError{msg: fmt.Sprintf("alloc.buffer_size 不能为负数: %d", c.Alloc.BufferSize)}
	case c.Isolation.Workers < 1 || c.Isolation.Depth < 1:
		return &usageError{msg: fmt.Sprintf("isolation.workers/depth 必须为正数: %d/%d",
			c.Isolation.Workers, c.Isolation.Depth)}
	case c.Isolation.Heartbeat <= 0:
		return &usageError{msg: fmt.Sprintf("isolation.heartbeat 必须为正数: %s", c.Isolation.Heartbeat)}
	}
	return nil
}
