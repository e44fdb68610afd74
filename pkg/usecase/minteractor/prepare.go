// 指示: miu200521358
package minteractor

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mconfig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
)

// featureRoot は生成対象の機能ルートを表す。
type featureRoot struct {
	Index model.BoneIndex
	Name  string
	Kind  model.FeatureKind
}

// discoverRoots は機能タグ付きボーンを登録順に集める。
// 解析できないタグと絞り込み対象外のルートはスキップ報告にする。
func discoverRoots(sk *model.Skeleton, generation mconfig.GenerationConfig) ([]featureRoot, []InstanceReport) {
	roots := make([]featureRoot, 0)
	skipped := make([]InstanceReport, 0)
	for _, bone := range sk.Values() {
		if bone.RigType == "" {
			continue
		}
		kind, err := model.ParseFeatureKind(bone.RigType)
		if err != nil {
			skipped = append(skipped, skippedReport(bone.Name, "", model.RigWarningUnknownFeature, err.Error()))
			logGenerateWarn("未知の機能種別をスキップしました: root=%s type=%s", bone.Name, bone.RigType)
			continue
		}
		if !generation.MatchRoot(bone.Name) {
			skipped = append(skipped, skippedReport(bone.Name, kind, model.RigWarningInstanceFiltered, "絞り込み条件の対象外です"))
			logGenerateDebug("絞り込み対象外: root=%s", bone.Name)
			continue
		}
		roots = append(roots, featureRoot{Index: bone.Index(), Name: bone.Name, Kind: kind})
	}
	return roots, skipped
}

// skippedReport はスキップしたルートの報告を生成する。
func skippedReport(root string, kind model.FeatureKind, warningID, message string) InstanceReport {
	return InstanceReport{
		Kind:     kind,
		Root:     root,
		Skipped:  true,
		Warnings: []mrig.Warning{{ID: warningID, Message: message}},
	}
}

// reportGenerateProgress は生成処理の進捗を通知する。
func reportGenerateProgress(reporter IGenerateProgressReporter, event GenerateProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportGenerateProgress(event)
}
