package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，数值与 slog.Level 相同。
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// levelNames 同时用于输出和解析，别名只参与解析。
var levelNames = []struct {
	level   Level
	name    string
	aliases []string
}{
	{LevelDebug, "DEBUG", nil},
	{LevelInfo, "INFO", nil},
	{LevelWarn, "WARN", []string{"warning"}},
	{LevelError, "ERROR", nil},
}

func (l Level) String() string {
	for _, n := range levelNames {
		if n.level == l {
			return n.name
		}
	}
	return slog.Level(l).String()
}

// MarshalText 使 Level 可以直接写入配置与 JSON。
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 按 ParseLevel 的规则解析。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析 debug/info/warn(warning)/error，忽略大小写与首尾空白。
// 解析失败时返回 LevelInfo 和 ErrUnknownLevel。
func ParseLevel(s string) (Level, error) {
	key := strings.TrimSpace(s)
	for _, n := range levelNames {
		if strings.EqualFold(key, n.name) {
			return n.level, nil
		}
		for _, alias := range n.aliases {
			if strings.EqualFold(key, alias) {
				return n.level, nil
			}
		}
	}
	return LevelInfo, fmt.Errorf("%w %q", ErrUnknownLevel, s)
}
