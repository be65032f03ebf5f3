// Package logger 提供全局 zerolog 日志配置
//
// 各模块通过 For("Component") 获取带 component 字段的子日志器，
// 输出格式与旧的 "[Component] msg" 前缀保持可读性一致。
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(io.Discard)
)

// ParseLevel 将字符串日志级别转换为 zerolog 级别，未知值回退到 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup 配置全局日志级别和输出
// out 为 nil 时输出到 stderr（终端前端占用 stdout 绘制画面时需要传入文件）
func Setup(level string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	zerolog.SetGlobalLevel(ParseLevel(level))

	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != io.Writer(os.Stderr),
	}

	l := zerolog.New(w).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()

	l.Info().Str("loglevel", zerolog.GlobalLevel().String()).Msg("Logging set up")
	return l
}

// For 返回带 component 字段的子日志器
func For(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", component).Logger()
}
