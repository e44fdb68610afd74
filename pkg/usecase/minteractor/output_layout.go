// 指示: miu200521358
package minteractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
)

const (
	rigOutputSuffix   = "_rig"
	outputDirFileMode = 0o755
)

var nowFunc = time.Now

// BuildDefaultOutputPath は入力メタリグパスから既定のリグ出力パスを生成する。
func BuildDefaultOutputPath(inputPath, format string) string {
	return buildDefaultOutputPathAt(inputPath, format, nowFunc())
}

// buildDefaultOutputPathAt は指定時刻で既定のリグ出力パスを生成する。
func buildDefaultOutputPathAt(inputPath, format string, now time.Time) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	ext := ".yaml"
	if format == moutput.FormatJSON {
		ext = ".json"
	}
	stamp := now.Format("20060102150405")
	return filepath.Join(dir, fmt.Sprintf("%s%s_%s%s", base, rigOutputSuffix, stamp, ext))
}

// FormatFromPath は拡張子から出力形式を判定する。判定できない場合は YAML。
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return moutput.FormatJSON
	}
	return moutput.FormatYAML
}

// PrepareOutputDir は保存先ディレクトリを作成する。
func PrepareOutputDir(outputPath string) error {
	outputDir := filepath.Dir(outputPath)
	if outputDir == "" {
		return fmt.Errorf("保存先ディレクトリの解決に失敗しました")
	}
	if err := os.MkdirAll(outputDir, outputDirFileMode); err != nil {
		return fmt.Errorf("保存先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}
