// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/io_rig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/mdriver"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/mpresenter"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/adapter/mpresenter/messages"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mconfig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/minteractor"
	"github.com/fsnotify/fsnotify"
)

// options はCLI引数を保持する。
type options struct {
	inputPath  string
	outputPath string
	configPath string
	panel      bool
	watch      bool
}

// main はメタリグからゲーム向けリグを生成する。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(ctx context.Context, args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}
	cfg, err := mconfig.LoadWithFallback(opts.configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageConfigFailed, err)
	}
	if err := setupLogger(cfg, errOut); err != nil {
		return err
	}

	uc, err := minteractor.NewGameRigUsecase(minteractor.GameRigUsecaseDeps{
		MetarigReader:   io_rig.NewMetarigRepository(),
		RigWriter:       io_rig.NewRigRepository(),
		DriverEvaluator: mdriver.NewEvaluator(),
		WidgetAssigner:  io_rig.NewWidgetAssigner(),
	})
	if err != nil {
		return err
	}

	if err := generateOnce(uc, opts, cfg, out); err != nil {
		if !opts.watch {
			return err
		}
		fmt.Fprintln(errOut, err)
	}
	if !opts.watch {
		return nil
	}
	return watchMetarig(ctx, opts.inputPath, func() {
		if err := generateOnce(uc, opts, cfg, out); err != nil {
			fmt.Fprintln(errOut, err)
		}
	})
}

// generateOnce はメタリグ全体からリグを作り直して保存する。
func generateOnce(uc *minteractor.GameRigUsecase, opts options, cfg *mconfig.Config, out io.Writer) error {
	fmt.Fprintf(out, "[gamerig] 読み込み開始: %s\n", opts.inputPath)
	result, err := uc.Generate(minteractor.GenerateRequest{InputPath: opts.inputPath, Config: cfg})
	if result != nil {
		if renderErr := mpresenter.RenderSummary(out, result); renderErr != nil {
			return renderErr
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageGenerateFailed, err)
	}

	outputPath, err := resolveOutputPath(opts.inputPath, opts.outputPath, cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := minteractor.PrepareOutputDir(outputPath); err != nil {
		return err
	}
	if err := uc.SaveRig(nil, outputPath, result, minteractor.SaveOptions{}); err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSaveFailed, err)
	}
	if opts.panel {
		if err := mpresenter.RenderPanel(out, result.Skeleton, result.UIRows); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "[gamerig] 生成完了: %s (run=%s failed=%d)\n", outputPath, result.RunID, result.FailedCount())
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("gamerig", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", "入力メタリグファイルパス (.yaml/.yml/.json)")
	out := fs.String("out", "", "出力リグファイルパス (.yaml/.yml/.json)")
	configPath := fs.String("config", "", "設定ファイルパス")
	panel := fs.Bool("panel", false, "アニメーター用パネルを表示する")
	watch := fs.Bool("watch", false, "メタリグの変更を監視して再生成する")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *out == "" && fs.NArg() > 1 {
		*out = fs.Arg(1)
	}
	if *in == "" {
		return options{}, fmt.Errorf("%s (-in)", messages.MessageInputRequired)
	}
	if !io_rig.NewMetarigRepository().CanLoad(*in) {
		return options{}, fmt.Errorf("入力拡張子が .yaml/.yml/.json ではありません: %s", *in)
	}

	return options{inputPath: *in, outputPath: *out, configPath: *configPath, panel: *panel, watch: *watch}, nil
}

// resolveOutputPath は出力リグパスを解決する。未指定の場合は入力と同じ場所へ時刻付きで出力する。
func resolveOutputPath(inputPath, outputPath, format string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		path := minteractor.BuildDefaultOutputPath(inputPath, format)
		if path == "" {
			return "", fmt.Errorf("出力パスを決定できません: %s", inputPath)
		}
		return path, nil
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".yaml", ".yml", ".json":
		return outputPath, nil
	default:
		return "", fmt.Errorf("出力拡張子が .yaml/.yml/.json ではありません: %s", outputPath)
	}
}

// setupLogger は設定からロガーを生成して既定ロガーにする。
func setupLogger(cfg *mconfig.Config, errOut io.Writer) error {
	verbose := make([]mlogging.VerboseIndex, 0, len(cfg.Logging.Verbose))
	for _, name := range cfg.Logging.Verbose {
		index, err := mlogging.ParseVerboseIndex(name)
		if err != nil {
			return err
		}
		verbose = append(verbose, index)
	}
	logger, err := mlogging.NewLogger(errOut, mlogging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	mlogging.SetDefaultLogger(logger)
	return nil
}

// watchMetarig は入力ファイルの書き込みを監視し、変更ごとに regenerate を呼ぶ。
// 保存時に置き換えるエディタに備えてディレクトリを監視する。ctx の終了で戻る。
func watchMetarig(ctx context.Context, path string, regenerate func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageWatchFailed, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%s: %w", messages.MessageWatchFailed, err)
	}
	logWatchInfo(messages.MessageWatching, path)

	filename := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logWatchInfo("メタリグ変更を検出: op=%s file=%s", event.Op, event.Name)
				regenerate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				regenerate()
				continue
			}
			logWatchInfo("監視エラー: %v", err)
		}
	}
}

// logWatchInfo は監視のINFOログを出力する。
func logWatchInfo(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
