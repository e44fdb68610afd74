// 指示: miu200521358
// Package mconfig はリグ生成設定の読み込みを提供する。
package mconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// 環境変数名。
const (
	EnvAtomic        = "GAMERIG_ATOMIC"
	EnvRootBone      = "GAMERIG_ROOT_BONE"
	EnvInclude       = "GAMERIG_INCLUDE"
	EnvExclude       = "GAMERIG_EXCLUDE"
	EnvLogLevel      = "GAMERIG_LOG_LEVEL"
	EnvLogFormat     = "GAMERIG_LOG_FORMAT"
	EnvLogVerbose    = "GAMERIG_LOG_VERBOSE"
	EnvOutputFormat  = "GAMERIG_OUTPUT_FORMAT"
	defaultRootBone  = "root"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultOutFormat = "yaml"
)

// Config は設定全体を表す。
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Output     OutputConfig     `yaml:"output"`
}

// GenerationConfig は生成処理の設定を表す。
type GenerationConfig struct {
	Atomic   *bool    `yaml:"atomic"`
	RootBone string   `yaml:"root_bone"`
	Include  []string `yaml:"include"`
	Exclude  []string `yaml:"exclude"`
}

// LoggingConfig はログ出力の設定を表す。
type LoggingConfig struct {
	Level   string   `yaml:"level"`
	Format  string   `yaml:"format"`
	Verbose []string `yaml:"verbose"`
}

// OutputConfig はリグ出力の設定を表す。
type OutputConfig struct {
	Format string `yaml:"format"`
}

// IsAtomic は機能単位の一括確定が有効か判定する。
func (g GenerationConfig) IsAtomic() bool {
	return g.Atomic == nil || *g.Atomic
}

// Default は既定設定を返す。
func Default() *Config {
	cfg := &Config{}
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	return cfg
}

// Load は設定ファイルを読み込み、環境変数で上書きして検証する。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}
	return Parse(data)
}

// Parse はYAML設定を解析する。環境変数展開を先に行う。
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルの解析に失敗しました: %w", err)
	}
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗しました: %w", err)
	}
	return &cfg, nil
}

// LoadWithFallback はパスが空または存在しない場合に既定設定を返す。
func LoadWithFallback(path string) (*Config, error) {
	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := Default()
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗しました: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAtomic); v != "" {
		atomic := parseBool(v)
		cfg.Generation.Atomic = &atomic
	}
	if v := os.Getenv(EnvRootBone); v != "" {
		cfg.Generation.RootBone = v
	}
	if v := os.Getenv(EnvInclude); v != "" {
		cfg.Generation.Include = splitList(v)
	}
	if v := os.Getenv(EnvExclude); v != "" {
		cfg.Generation.Exclude = splitList(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvLogVerbose); v != "" {
		cfg.Logging.Verbose = splitList(v)
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.Format = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setDefaults(cfg *Config) {
	if cfg.Generation.Atomic == nil {
		atomic := true
		cfg.Generation.Atomic = &atomic
	}
	if cfg.Generation.RootBone == "" {
		cfg.Generation.RootBone = defaultRootBone
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = defaultOutFormat
	}
}

func validate(cfg *Config) error {
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("logging.level が不正です: %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		return fmt.Errorf("logging.format は console か json を指定してください: %q", cfg.Logging.Format)
	}
	validOutputs := map[string]bool{"yaml": true, "json": true}
	if !validOutputs[strings.ToLower(cfg.Output.Format)] {
		return fmt.Errorf("output.format は yaml か json を指定してください: %q", cfg.Output.Format)
	}
	for _, pattern := range append(append([]string{}, cfg.Generation.Include...), cfg.Generation.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("ボーン名パターンが不正です: %q", pattern)
		}
	}
	return nil
}

// MatchRoot は機能ルート名が包含除外パターンを満たすか判定する。
// include が空の場合は全て包含する。exclude は include より優先する。
func (g GenerationConfig) MatchRoot(name string) bool {
	for _, pattern := range g.Exclude {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return false
		}
	}
	if len(g.Include) == 0 {
		return true
	}
	for _, pattern := range g.Include {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
