// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/merrors"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mconfig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mlogging"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
	"github.com/google/uuid"
)

// Generate はメタリグの機能ルートごとに生成器を順に実行し、生成後検証まで行う。
// 1インスタンスの失敗は他のインスタンスへ波及しない。検証失敗時は結果とエラーを両方返す。
func (uc *GameRigUsecase) Generate(request GenerateRequest) (*GenerateResult, error) {
	cfg := request.Config
	if cfg == nil {
		cfg = mconfig.Default()
	}
	sk := request.Skeleton
	if sk == nil {
		loaded, err := uc.LoadMetarig(request.Reader, request.InputPath)
		if err != nil {
			return nil, err
		}
		sk = loaded
	}
	runID := uuid.NewString()
	reportGenerateProgress(request.ProgressReporter, GenerateProgressEvent{
		Type:  GenerateProgressEventTypeInputLoaded,
		RunID: runID,
		Total: sk.Len(),
	})

	roots, skipped := discoverRoots(sk, cfg.Generation)
	result := &GenerateResult{RunID: runID, Skeleton: sk, Instances: skipped}
	reportGenerateProgress(request.ProgressReporter, GenerateProgressEvent{
		Type:  GenerateProgressEventTypeRootsDiscovered,
		RunID: runID,
		Total: len(roots),
	})

	options := mrig.GenerateOptions{RootBoneName: cfg.Generation.RootBone}
	atomic := cfg.Generation.IsAtomic()
	for i, root := range roots {
		event := GenerateProgressEvent{RunID: runID, Kind: root.Kind, Root: root.Name, Index: i, Total: len(roots)}
		event.Type = GenerateProgressEventTypeInstanceStarted
		reportGenerateProgress(request.ProgressReporter, event)

		report, rows := uc.generateInstance(sk, root, options, atomic)
		result.Instances = append(result.Instances, report)
		result.UIRows = append(result.UIRows, rows...)

		if report.Failed() {
			event.Type = GenerateProgressEventTypeInstanceFailed
			logGenerateWarn("機能インスタンスの生成に失敗しました: run=%s kind=%s root=%s structural=%t err=%v",
				runID, root.Kind, root.Name, merrors.IsStructuralError(report.Err), report.Err)
		} else {
			event.Type = GenerateProgressEventTypeInstanceCompleted
			logGenerateInfo("機能インスタンス生成: run=%s kind=%s root=%s bones=%d",
				runID, root.Kind, root.Name, generatedTotal(report))
		}
		for _, warning := range report.Warnings {
			logGenerateWarn("機能インスタンス警告: run=%s root=%s id=%s %s", runID, root.Name, warning.ID, warning.Message)
		}
		reportGenerateProgress(request.ProgressReporter, event)
	}

	if err := ValidateSkeleton(sk, uc.driverEvaluator); err != nil {
		logGenerateWarn("生成後検証に失敗しました: run=%s err=%v", runID, err)
		return result, fmt.Errorf("生成後検証に失敗しました: %w", err)
	}
	reportGenerateProgress(request.ProgressReporter, GenerateProgressEvent{
		Type:  GenerateProgressEventTypeValidated,
		RunID: runID,
		Total: sk.Len(),
	})
	logGenerateInfo("リグ生成完了: run=%s instances=%d failed=%d bones=%d",
		runID, len(result.Instances), result.FailedCount(), result.GeneratedCount())
	return result, nil
}

// generateInstance は1機能ルートを生成する。atomic の場合は失敗時にスケルトンを復元する。
func (uc *GameRigUsecase) generateInstance(
	sk *model.Skeleton,
	root featureRoot,
	options mrig.GenerateOptions,
	atomic bool,
) (InstanceReport, []model.UIRow) {
	report := InstanceReport{Kind: root.Kind, Root: root.Name}
	builder, ok := uc.registry.Lookup(root.Kind)
	if !ok {
		report.Err = fmt.Errorf("生成器が未登録です: %s", root.Kind)
		return report, nil
	}

	var snapshot *model.SkeletonSnapshot
	if atomic {
		taken, err := sk.Snapshot()
		if err != nil {
			report.Err = err
			return report, nil
		}
		snapshot = taken
	}

	ri, err := builder.Generate(sk, root.Index, options)
	if err != nil {
		if snapshot != nil {
			if restoreErr := sk.Restore(snapshot); restoreErr != nil {
				err = errors.Join(err, restoreErr)
			}
		}
		report.Err = err
		report.Warnings = []mrig.Warning{{ID: model.RigWarningInstanceSkipped, Message: err.Error()}}
		return report, nil
	}

	uc.assignWidgets(ri)
	report.Generated = make(map[model.Role][]string, len(ri.Generated))
	for _, role := range model.Roles {
		if names := ri.GeneratedNames(role); len(names) > 0 {
			report.Generated[role] = names
		}
	}
	report.Warnings = ri.Warnings
	return report, ri.UIRows
}

// assignWidgets は生成したコントロールとツイークへ表示形状を割り当てる。
func (uc *GameRigUsecase) assignWidgets(ri *mrig.RigInstance) {
	if uc.widgetAssigner == nil {
		return
	}
	for _, role := range []model.Role{model.ROLE_CONTROL, model.ROLE_TWEAK} {
		for _, index := range ri.Generated[role] {
			if bone := ri.Bone(index); bone != nil {
				bone.Widget = uc.widgetAssigner.AssignWidget(bone, ri.Kind)
			}
		}
	}
}

// generatedTotal は報告中の生成ボーン数を返す。
func generatedTotal(report InstanceReport) int {
	total := 0
	for _, names := range report.Generated {
		total += len(names)
	}
	return total
}

// logGenerateInfo はリグ生成のINFOログを出力する。
func logGenerateInfo(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logGenerateWarn はリグ生成のWARNログを出力する。
func logGenerateWarn(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}

// logGenerateDebug はリグ生成のDEBUGログを出力する。
func logGenerateDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
	if logger.IsVerboseEnabled(mlogging.VERBOSE_INDEX_RIG) {
		logger.Verbose(mlogging.VERBOSE_INDEX_RIG, "[DEBUG] "+format, params...)
	}
}
