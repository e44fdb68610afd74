// 指示: miu200521358
package minteractor

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/infra/mconfig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/mrig"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/usecase/port/moutput"
)

// SaveOptions は保存時オプションを表す。
type SaveOptions = moutput.SaveOptions

// GenerateProgressEventType は生成処理の進捗イベント種別を表す。
type GenerateProgressEventType string

const (
	// GenerateProgressEventTypeInputLoaded はメタリグ読み込み完了イベントを表す。
	GenerateProgressEventTypeInputLoaded GenerateProgressEventType = "input_loaded"
	// GenerateProgressEventTypeRootsDiscovered は機能ルート探索完了イベントを表す。
	GenerateProgressEventTypeRootsDiscovered GenerateProgressEventType = "roots_discovered"
	// GenerateProgressEventTypeInstanceStarted は機能インスタンス開始イベントを表す。
	GenerateProgressEventTypeInstanceStarted GenerateProgressEventType = "instance_started"
	// GenerateProgressEventTypeInstanceCompleted は機能インスタンス完了イベントを表す。
	GenerateProgressEventTypeInstanceCompleted GenerateProgressEventType = "instance_completed"
	// GenerateProgressEventTypeInstanceFailed は機能インスタンス失敗イベントを表す。
	GenerateProgressEventTypeInstanceFailed GenerateProgressEventType = "instance_failed"
	// GenerateProgressEventTypeValidated は生成後検証完了イベントを表す。
	GenerateProgressEventTypeValidated GenerateProgressEventType = "validated"
)

// GenerateProgressEvent は生成処理の進捗イベントを表す。
type GenerateProgressEvent struct {
	Type  GenerateProgressEventType
	RunID string
	Kind  model.FeatureKind
	Root  string
	Index int
	Total int
}

// IGenerateProgressReporter は生成処理の進捗通知契約を表す。
type IGenerateProgressReporter interface {
	// ReportGenerateProgress は生成処理進捗を通知する。
	ReportGenerateProgress(event GenerateProgressEvent)
}

// GenerateRequest はリグ生成要求を表す。
type GenerateRequest struct {
	InputPath        string
	Skeleton         *model.Skeleton
	Config           *mconfig.Config
	Reader           moutput.IMetarigReader
	ProgressReporter IGenerateProgressReporter
}

// InstanceReport は機能インスタンス1件の結果を表す。
type InstanceReport struct {
	Kind      model.FeatureKind
	Root      string
	Generated map[model.Role][]string
	Warnings  []mrig.Warning
	Skipped   bool
	Err       error
}

// Failed はインスタンスが失敗したか判定する。
func (r InstanceReport) Failed() bool {
	return r.Err != nil
}

// GenerateResult はリグ生成結果を表す。
type GenerateResult struct {
	RunID     string
	Skeleton  *model.Skeleton
	Instances []InstanceReport
	UIRows    []model.UIRow
}

// FailedCount は失敗したインスタンス数を返す。
func (r *GenerateResult) FailedCount() int {
	count := 0
	for _, instance := range r.Instances {
		if instance.Failed() {
			count++
		}
	}
	return count
}

// GeneratedCount は生成されたボーン総数を返す。
func (r *GenerateResult) GeneratedCount() int {
	total := 0
	for _, instance := range r.Instances {
		for _, names := range instance.Generated {
			total += len(names)
		}
	}
	return total
}
