// 指示: miu200521358
// Package mlogging は zerolog を用いたログ出力を提供する。
package mlogging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// VerboseIndex は冗長ログの種別を表す。
type VerboseIndex int

const (
	// VERBOSE_INDEX_RIG は機能生成の冗長ログ。
	VERBOSE_INDEX_RIG VerboseIndex = iota
	// VERBOSE_INDEX_FACE は顔生成の冗長ログ。
	VERBOSE_INDEX_FACE
	// VERBOSE_INDEX_VALIDATE は生成後検証の冗長ログ。
	VERBOSE_INDEX_VALIDATE
	verboseIndexCount
)

var verboseNames = map[VerboseIndex]string{
	VERBOSE_INDEX_RIG:      "rig",
	VERBOSE_INDEX_FACE:     "face",
	VERBOSE_INDEX_VALIDATE: "validate",
}

// String は冗長ログ種別名を返す。
func (v VerboseIndex) String() string {
	if name, ok := verboseNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseVerboseIndex は名前から冗長ログ種別を返す。
func ParseVerboseIndex(name string) (VerboseIndex, error) {
	for index, value := range verboseNames {
		if strings.EqualFold(value, strings.TrimSpace(name)) {
			return index, nil
		}
	}
	return 0, fmt.Errorf("未対応の冗長ログ種別です: %s", name)
}

// ILogger はログ出力の抽象。
type ILogger interface {
	Info(format string, params ...any)
	Debug(format string, params ...any)
	Warn(format string, params ...any)
	Error(format string, params ...any)
	IsVerboseEnabled(index VerboseIndex) bool
	Verbose(index VerboseIndex, format string, params ...any)
}

// Options はロガー生成設定を表す。
type Options struct {
	Level   string
	Format  string
	Verbose []VerboseIndex
}

// Logger は zerolog を包んだ ILogger 実装。
type Logger struct {
	logger  zerolog.Logger
	verbose [verboseIndexCount]bool
}

// NewLogger はロガーを生成する。Format が console の場合は人間向け出力にする。
func NewLogger(out io.Writer, options Options) (*Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	level := zerolog.InfoLevel
	if strings.TrimSpace(options.Level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(options.Level))
		if err != nil {
			return nil, fmt.Errorf("ログレベルの解析に失敗しました: %w", err)
		}
		level = parsed
	}
	writer := out
	switch strings.ToLower(options.Format) {
	case "", "console":
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	case "json":
	default:
		return nil, fmt.Errorf("未対応のログ形式です: %s", options.Format)
	}
	logger := &Logger{
		logger: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
	for _, index := range options.Verbose {
		if index >= 0 && index < verboseIndexCount {
			logger.verbose[index] = true
		}
	}
	return logger, nil
}

// With はフィールドを追加したロガーを返す。
func (l *Logger) With(key, value string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		logger:  l.logger.With().Str(key, value).Logger(),
		verbose: l.verbose,
	}
}

// Info はINFOログを出力する。
func (l *Logger) Info(format string, params ...any) {
	l.logger.Info().Msgf(format, params...)
}

// Debug はDEBUGログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	l.logger.Debug().Msgf(format, params...)
}

// Warn はWARNログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	l.logger.Warn().Msgf(format, params...)
}

// Error はERRORログを出力する。
func (l *Logger) Error(format string, params ...any) {
	l.logger.Error().Msgf(format, params...)
}

// IsVerboseEnabled は冗長ログ種別が有効か判定する。
func (l *Logger) IsVerboseEnabled(index VerboseIndex) bool {
	if l == nil || index < 0 || index >= verboseIndexCount {
		return false
	}
	return l.verbose[index]
}

// Verbose は冗長ログを出力する。無効な種別は出力しない。
func (l *Logger) Verbose(index VerboseIndex, format string, params ...any) {
	if !l.IsVerboseEnabled(index) {
		return
	}
	l.logger.Debug().Str("verbose", index.String()).Msgf(format, params...)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger ILogger
)

// DefaultLogger は既定ロガーを返す。未設定の場合は nil。
func DefaultLogger() ILogger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを設定する。
func SetDefaultLogger(logger ILogger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
