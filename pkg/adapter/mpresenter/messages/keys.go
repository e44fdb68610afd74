// 指示: miu200521358
// Package messages はCLI表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	HelpUsageTitle = "使い方"
	HelpUsage      = "使い方: gamerig -in metarig.yaml [-out rig.yaml] [-config config.yaml] [-panel] [-watch]"

	LabelPanelTitle    = "アニメーター用パネル"
	LabelPanelLabel    = "ラベル"
	LabelPanelBone     = "ボーン"
	LabelPanelProperty = "プロパティ"
	LabelPanelDefault  = "既定値"

	LabelSummaryKind      = "機能"
	LabelSummaryRoot      = "ルート"
	LabelSummaryGenerated = "生成数"
	LabelSummaryStatus    = "状態"
	StatusGenerated       = "生成"
	StatusSkipped         = "スキップ"
	StatusFailed          = "失敗"

	MessageLoadFailed     = "読み込み失敗"
	MessageSaveFailed     = "保存失敗"
	MessageGenerateFailed = "生成失敗"
	MessageInputRequired  = "メタリグファイルを指定してください"
	MessageConfigFailed   = "設定の読み込みに失敗しました"
	MessageWatchFailed    = "監視の開始に失敗しました"
	MessageWatching       = "変更を監視しています: %s"

	LogLoadSuccess     = "メタリグ読み込み成功: %s"
	LogGenerateSuccess = "リグ保存成功: %s"
)
