// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/io_rig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/mdriver"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mconfig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/minteractor"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

const (
	batchOutputDirMode = 0o755
)

// batchConfig はバッチ再生成の実行設定を表す。
type batchConfig struct {
	InputGlob  string
	OutputRoot string
	ConfigPath string
	DryRun     bool
	FailFast   bool
}

// generationEntry は1メタリグ分の生成入力情報を表す。
type generationEntry struct {
	Index       int
	SourcePath  string
	MetarigName string
	CaseDir     string
	OutputPath  string
}

// generationResult は1メタリグ分の生成結果を表す。
type generationResult struct {
	Entry         generationEntry
	Status        string
	Duration      time.Duration
	Err           error
	RunID         string
	FailedCount   int
	ProgressStage string
}

// generateProgressCollector は Generate の進捗イベントを収集する。
type generateProgressCollector struct {
	eventCounts map[minteractor.GenerateProgressEventType]int
	rootTotal   int
}

// main は検証用メタリグ群からリグを一括再生成する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括再生成を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	inputPaths, err := doublestar.FilepathGlob(normalizeInputPath(config.InputGlob))
	if err != nil {
		fmt.Fprintf(os.Stderr, "入力パターンが不正です: %v\n", err)
		return 2
	}
	sort.Strings(inputPaths)
	batchID := uuid.NewString()
	entries := buildGenerationEntries(filepath.Join(config.OutputRoot, batchID), inputPaths)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "生成対象メタリグがありません")
		return 2
	}
	fmt.Printf("バッチ開始: batch=%s pattern=%s targets=%d\n", batchID, config.InputGlob, len(entries))

	results := executeBatchGeneration(config, entries)
	printBatchSummary(batchID, results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	scriptDir, err := resolveScriptDir()
	if err != nil {
		return batchConfig{}, err
	}
	inputGlob := flag.String("input-glob", filepath.Join(scriptDir, "testdata", "**", "*.{yaml,yml,json}"), "入力メタリグの doublestar パターン")
	outputRoot := flag.String("output-root", filepath.Join(scriptDir, "output"), "生成結果の出力ルートディレクトリ")
	configPath := flag.String("config", "", "生成設定ファイルパス")
	dryRun := flag.Bool("dry-run", false, "実生成せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	if !doublestar.ValidatePathPattern(*inputGlob) {
		return batchConfig{}, fmt.Errorf("input-glob が不正です: %s", *inputGlob)
	}
	return batchConfig{
		InputGlob:  *inputGlob,
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		ConfigPath: *configPath,
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveScriptDir はスクリプト配置ディレクトリを返す。
func resolveScriptDir() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Dir(currentFilePath), nil
}

// buildGenerationEntries は入力パス一覧から生成対象エントリを生成する。
func buildGenerationEntries(outputRoot string, inputPaths []string) []generationEntry {
	entries := make([]generationEntry, 0, len(inputPaths))
	for i, rawPath := range inputPaths {
		name := resolveModelName(rawPath)
		safeName := sanitizePathComponent(name)
		caseDir := filepath.Join(outputRoot, fmt.Sprintf("%03d_%s", i+1, safeName))
		entries = append(entries, generationEntry{
			Index:       i + 1,
			SourcePath:  filepath.Clean(rawPath),
			MetarigName: name,
			CaseDir:     caseDir,
			OutputPath:  filepath.Join(caseDir, safeName+"_rig.yaml"),
		})
	}
	return entries
}

// executeBatchGeneration は全メタリグの生成処理を順次実行する。
func executeBatchGeneration(config batchConfig, entries []generationEntry) []generationResult {
	results := make([]generationResult, 0, len(entries))
	cfg, err := mconfig.LoadWithFallback(config.ConfigPath)
	if err != nil {
		return append(results, generationResult{Status: "failed", Err: err})
	}
	usecase, err := minteractor.NewGameRigUsecase(minteractor.GameRigUsecaseDeps{
		MetarigReader:   io_rig.NewMetarigRepository(),
		RigWriter:       io_rig.NewRigRepository(),
		DriverEvaluator: mdriver.NewEvaluator(),
		WidgetAssigner:  io_rig.NewWidgetAssigner(),
	})
	if err != nil {
		return append(results, generationResult{Status: "failed", Err: err})
	}

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 生成開始: metarig=%s\n", entry.Index, total, entry.MetarigName)
		result := generateEntry(usecase, cfg, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 生成成功: metarig=%s run=%s output=%s failedInstances=%d elapsed=%s\n",
				entry.Index, total, entry.MetarigName, result.RunID, entry.OutputPath, result.FailedCount, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.ProgressStage) != "" {
				fmt.Printf("[%d/%d] Generate進捗: %s\n", entry.Index, total, result.ProgressStage)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: metarig=%s input=%s output=%s\n", entry.Index, total, entry.MetarigName, entry.SourcePath, entry.OutputPath)
		default:
			fmt.Printf("[%d/%d] 生成失敗: metarig=%s reason=%v\n", entry.Index, total, entry.MetarigName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// generateEntry は1メタリグ分の生成と保存を実行する。
func generateEntry(usecase *minteractor.GameRigUsecase, cfg *mconfig.Config, config batchConfig, entry generationEntry) generationResult {
	result := generationResult{
		Entry:  entry,
		Status: "failed",
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	collector := newGenerateProgressCollector()
	generated, err := usecase.Generate(minteractor.GenerateRequest{
		InputPath:        entry.SourcePath,
		Config:           cfg,
		ProgressReporter: collector,
	})
	if err != nil {
		result.Err = fmt.Errorf("Generateに失敗しました: %w", err)
		return result
	}
	if err := usecase.SaveRig(nil, entry.OutputPath, generated, minteractor.SaveOptions{}); err != nil {
		result.Err = fmt.Errorf("SaveRigに失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.RunID = generated.RunID
	result.FailedCount = generated.FailedCount()
	result.ProgressStage = collector.Summary()
	return result
}

// printBatchSummary は生成結果の集計を標準出力へ表示する。
func printBatchSummary(batchID string, results []generationResult) {
	succeeded := 0
	failed := 0
	dryRun := 0
	failedInstances := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
			failedInstances += result.FailedCount
		case "dry_run":
			dryRun++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ生成サマリ: batch=%s total=%d succeeded=%d failed=%d dry_run=%d failed_instances=%d\n",
		batchID,
		len(results),
		succeeded,
		failed,
		dryRun,
		failedInstances,
	)
}

// resolveModelName は入力パスから拡張子を除いたメタリグ名を返す。
func resolveModelName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	ext := filepath.Ext(base)
	name := strings.TrimSpace(strings.TrimSuffix(base, ext))
	if name == "" {
		return "metarig"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(path))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	trimmed := strings.TrimSpace(path)
	if runtime.GOOS != "linux" {
		return trimmed
	}
	if len(trimmed) < 2 || trimmed[1] != ':' {
		return trimmed
	}
	drive := strings.ToLower(trimmed[:1])
	rest := strings.ReplaceAll(trimmed[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// sanitizePathComponent は出力ディレクトリ/ファイル名に使えない文字を置換する。
func sanitizePathComponent(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "metarig"
	}
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			if r < 0x20 {
				return '_'
			}
			return r
		}
	}, trimmed)
	replaced = strings.Trim(replaced, " .")
	if replaced == "" {
		return "metarig"
	}
	return replaced
}

// newGenerateProgressCollector は Generate 進捗収集器を生成する。
func newGenerateProgressCollector() *generateProgressCollector {
	return &generateProgressCollector{
		eventCounts: map[minteractor.GenerateProgressEventType]int{},
	}
}

// ReportGenerateProgress は Generate の進捗イベントを収集する。
func (collector *generateProgressCollector) ReportGenerateProgress(event minteractor.GenerateProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[minteractor.GenerateProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	if event.Type == minteractor.GenerateProgressEventTypeRootsDiscovered {
		collector.rootTotal = event.Total
	}
}

// Summary は収集した Generate 進捗の要約文字列を返す。
func (collector *generateProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType, count := range collector.eventCounts {
		types = append(types, fmt.Sprintf("%s:%d", stageType, count))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"roots=%d completed=%d failed=%d stages=%s",
		collector.rootTotal,
		collector.eventCounts[minteractor.GenerateProgressEventTypeInstanceCompleted],
		collector.eventCounts[minteractor.GenerateProgressEventTypeInstanceFailed],
		strings.Join(types, ","),
	)
}
