// 指示: miu200521358
package model

const (
	// RigWarningSubchainMissing は部位チェーン不足による省略警告。
	RigWarningSubchainMissing = "RigWarningSubchainMissing"
	// RigWarningRootBoneMissing はルートボーン不在による代替処理警告。
	RigWarningRootBoneMissing = "RigWarningRootBoneMissing"
	// RigWarningInstanceSkipped は機能インスタンスの生成失敗警告。
	RigWarningInstanceSkipped = "RigWarningInstanceSkipped"
	// RigWarningInstanceFiltered は包含除外パターンによる除外警告。
	RigWarningInstanceFiltered = "RigWarningInstanceFiltered"
	// RigWarningUnknownFeature は未対応タグ警告。
	RigWarningUnknownFeature = "RigWarningUnknownFeature"
)

// RigWarningIDs は警告ID一覧。
var RigWarningIDs = []string{
	RigWarningSubchainMissing,
	RigWarningRootBoneMissing,
	RigWarningInstanceSkipped,
	RigWarningInstanceFiltered,
	RigWarningUnknownFeature,
}
