package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidISOTime 无法解析的 ISO-8601 时间
var ErrInvalidISOTime = errors.New("invalid ISO-8601 timestamp")

// 带时区偏移的格式，解析后统一转换为 UTC
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
}

// 不带时区的格式按 UTC 解释
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// ParseISOTime 解析 ISO-8601 时间字符串
// 日期与时间之间允许使用 T 或空格，秒可带小数，时区可省略（视为 UTC）
// 返回值为 UTC 时间，精度截断到微秒
func ParseISOTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return normalize(t), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidISOTime, s)
}

// FormatISOTime 输出不带时区的 UTC ISO-8601 字符串
// 微秒不为 0 时追加 6 位小数，如 2024-01-15T12:30:00.250000
func FormatISOTime(t time.Time) string {
	t = t.UTC()
	out := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		out += fmt.Sprintf(".%06d", us)
	}
	return out
}

// NowUTC 当前 UTC 时间（微秒精度）
func NowUTC() time.Time {
	return normalize(time.Now())
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
