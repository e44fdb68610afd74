// 指示: miu200521358
package moutput

import "github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"

// 出力形式。
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct {
	Format string
	RunID  string
	Panel  []model.UIRow
}

// IMetarigReader はメタリグ文書の読み込み契約を表す。
type IMetarigReader interface {
	// Load はパスからメタリグを読み込む。
	Load(path string) (*model.Skeleton, error)
}

// IRigWriter は生成済みリグの書き込み契約を表す。
type IRigWriter interface {
	// Save は生成済みリグを保存する。
	Save(path string, sk *model.Skeleton, opts SaveOptions) error
}

// IDriverEvaluator はドライバー式の検証・評価契約を表す。
type IDriverEvaluator interface {
	// Compile は式を検証する。
	Compile(expression string) error
	// Evaluate は変数値を与えてドライバーを評価する。
	Evaluate(driver model.Driver, values map[string]float64) (float64, error)
}

// IWidgetAssigner はコントロールへの表示形状割り当て契約を表す。
type IWidgetAssigner interface {
	// AssignWidget は形状名を返す。空文字は割り当てなし。
	AssignWidget(bone *model.Bone, kind model.FeatureKind) string
}
